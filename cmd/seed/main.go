package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/clinichq/clinic-manager/config"
	"github.com/clinichq/clinic-manager/pkg/helpers"
)

// Seeds the first administrator plus a demo doctor, receptionist, and
// patient. Public registration can never create an Admin, so this is
// the only way the first one comes to exist.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminID := upsertAccount(db, "Clinic Admin", "admin@clinic.local", "admin12345", "Admin")
	doctorID := upsertAccount(db, "Dr. Maya Iskandar", "doctor@clinic.local", "doctor12345", "Doctor")
	frontID := upsertAccount(db, "Front Desk", "frontdesk@clinic.local", "desk12345", "Receptionist")
	patientAcctID := upsertAccount(db, "Budi Hartono", "patient@clinic.local", "patient12345", "Patient")

	fmt.Printf("seeded accounts: admin=%s doctor=%s receptionist=%s patient=%s\n",
		adminID, doctorID, frontID, patientAcctID)

	// Demo patient record linked to the patient account
	var patientID string
	err = db.QueryRow(`SELECT id FROM patients WHERE account_id = $1`, patientAcctID).Scan(&patientID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO patients (name, age, gender, contact, account_id, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, "Budi Hartono", 42, "Male", "patient@clinic.local", patientAcctID, frontID).Scan(&patientID)
	}
	if err != nil {
		log.Fatalf("failed to seed patient record: %v", err)
	}
	fmt.Printf("patient record: id=%s\n", patientID)
}

func upsertAccount(db *sql.DB, name, email, password, role string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role, status)
		VALUES ($1, lower($2), $3, $4, 'active')
		ON CONFLICT ((lower(email))) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account %s: %v", email, err)
	}
	return id
}
