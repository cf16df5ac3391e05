// Command seed_catalog loads the default subject and faculty catalog into
// an empty database. Existing rows are left untouched, so it is safe to run
// against a populated instance.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"time"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/pkg/config"
	"github.com/campusdesk/feedback-api/pkg/database"
)

var defaultSubjects = []models.Subject{
	{ID: "sub-1", Name: "Engineering Mathematics-I", Code: "MA101", Branch: "CSE", Year: 1},
	{ID: "sub-2", Name: "Programming in C", Code: "CS102", Branch: "CSE", Year: 1},
	{ID: "sub-3", Name: "Data Structures", Code: "CS201", Branch: "CSE", Year: 2},
	{ID: "sub-4", Name: "Database Management Systems", Code: "CS301", Branch: "CSE", Year: 3},
	{ID: "sub-5", Name: "Digital Logic Design", Code: "EC201", Branch: "ECE", Year: 2},
	{ID: "sub-6", Name: "Signals and Systems", Code: "EC202", Branch: "ECE", Year: 2},
	{ID: "sub-7", Name: "Power Systems-I", Code: "EE301", Branch: "EEE", Year: 3},
	{ID: "sub-8", Name: "Electrical Machines", Code: "EE302", Branch: "EEE", Year: 3},
	{ID: "sub-9", Name: "Thermodynamics", Code: "ME201", Branch: "MECHANICAL", Year: 2},
	{ID: "sub-10", Name: "Design of Machine Elements", Code: "ME401", Branch: "MECHANICAL", Year: 4},
	{ID: "sub-11", Name: "Strength of Materials", Code: "CE201", Branch: "CIVIL", Year: 2},
	{ID: "sub-12", Name: "Transportation Engineering", Code: "CE401", Branch: "CIVIL", Year: 4},
}

var defaultFaculty = []models.FacultyMember{
	{
		ID: "fac-1", Name: "Dr. Priya Sharma", EmployeeID: "FAC-CSE-101", Branch: "CSE",
		Teaching: mustTeaching([]models.TeachingAssignment{
			{SubjectID: "sub-3", Year: 2, Section: 1},
			{SubjectID: "sub-4", Year: 3, Section: 2},
		}),
	},
	{
		ID: "fac-2", Name: "Prof. Arun Reddy", EmployeeID: "FAC-ECE-114", Branch: "ECE",
		Teaching: mustTeaching([]models.TeachingAssignment{
			{SubjectID: "sub-5", Year: 2, Section: 1},
			{SubjectID: "sub-6", Year: 2, Section: 3},
		}),
	},
	{
		ID: "fac-3", Name: "Dr. Kavitha Rao", EmployeeID: "FAC-EEE-221", Branch: "EEE",
		Teaching: mustTeaching([]models.TeachingAssignment{
			{SubjectID: "sub-7", Year: 3, Section: 1},
			{SubjectID: "sub-8", Year: 3, Section: 2},
		}),
	},
}

func mustTeaching(assignments []models.TeachingAssignment) json.RawMessage {
	data, err := json.Marshal(assignments)
	if err != nil {
		log.Fatalf("encode teaching assignments: %v", err)
	}
	return data
}

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall seed timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	now := time.Now().UTC()
	var inserted int

	for _, subject := range defaultSubjects {
		subject.DepartmentID = authz.InferDepartmentID(subject.Branch)
		subject.CreatedAt = now
		subject.UpdatedAt = now
		result, err := db.NamedExecContext(ctx, `INSERT INTO subjects (id, name, code, branch, department_id, year, created_at, updated_at)
			VALUES (:id, :name, :code, :branch, :department_id, :year, :created_at, :updated_at)
			ON CONFLICT (id) DO NOTHING`, subject)
		if err != nil {
			log.Fatalf("seed subject %s: %v", subject.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	for _, member := range defaultFaculty {
		member.CreatedAt = now
		member.UpdatedAt = now
		result, err := db.NamedExecContext(ctx, `INSERT INTO faculty (id, name, employee_id, branch, teaching, created_at, updated_at)
			VALUES (:id, :name, :employee_id, :branch, :teaching, :created_at, :updated_at)
			ON CONFLICT (id) DO NOTHING`, member)
		if err != nil {
			log.Fatalf("seed faculty %s: %v", member.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	log.Printf("seed complete: %d new rows", inserted)
}
