package models

import "encoding/json"

// Pagination describes page metadata returned alongside list responses.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total_count"`
}

// FlexStrings decodes a JSON value that may be a single string or an array
// of strings. Older clients send scalars where newer ones send lists.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*f = nil
		return nil
	}
	*f = FlexStrings{single}
	return nil
}
