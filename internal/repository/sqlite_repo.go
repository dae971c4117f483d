package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

// Schema cria as tabelas usadas pelos repositórios SQLite.
const Schema = `
CREATE TABLE IF NOT EXISTS agreements (
	id TEXT NOT NULL PRIMARY KEY,
	course TEXT NOT NULL,
	payment_plan TEXT NOT NULL,
	customer_name TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	agreement_accepted INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	ip_address TEXT,
	user_agent TEXT,
	session_data TEXT
);
CREATE TABLE IF NOT EXISTS enrollments (
	id TEXT NOT NULL PRIMARY KEY,
	email TEXT,
	name TEXT,
	course_id TEXT NOT NULL,
	payment_plan TEXT NOT NULL,
	stripe_session_id TEXT,
	customer_id TEXT,
	subscription_id TEXT,
	enrolled_at TEXT NOT NULL,
	status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_enrollments_customer ON enrollments(customer_id);
CREATE TABLE IF NOT EXISTS installment_payments (
	subscription_id TEXT NOT NULL,
	invoice_id TEXT NOT NULL,
	paid_at TEXT NOT NULL,
	PRIMARY KEY (subscription_id, invoice_id)
);
`

// sqliteRepository implementa os repositórios sobre uma conexão *sql.DB.
type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteAgreementRepository(db *sql.DB) AgreementRepository {
	return &sqliteRepository{db: db}
}

func NewSQLiteEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &sqliteEnrollmentRepository{db: db}
}

func NewSQLiteInstallmentLedger(db *sql.DB) InstallmentLedger {
	return &sqliteInstallmentLedger{db: db}
}

// --- AGREEMENTS ---

func (r *sqliteRepository) Append(ctx context.Context, a domain.Agreement) (string, error) {
	sessionData, err := json.Marshal(a.SessionData)
	if err != nil {
		return "", err
	}

	stmt, err := r.db.PrepareContext(ctx, `INSERT INTO agreements(id, course, payment_plan, customer_name, customer_email,
		agreement_accepted, created_at, ip_address, user_agent, session_data) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, a.ID, a.Course, a.PaymentPlan, a.CustomerName, a.CustomerEmail,
		a.AgreementAccepted, a.Timestamp.UTC().Format(time.RFC3339Nano), a.IPAddress, a.UserAgent, string(sessionData))
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

func (r *sqliteRepository) List(ctx context.Context) ([]domain.Agreement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, course, payment_plan, customer_name, customer_email,
		agreement_accepted, created_at, ip_address, user_agent, session_data FROM agreements ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []domain.Agreement
	for rows.Next() {
		var (
			a          domain.Agreement
			createdAt  string
			ip, ua, sd sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Course, &a.PaymentPlan, &a.CustomerName, &a.CustomerEmail,
			&a.AgreementAccepted, &createdAt, &ip, &ua, &sd); err != nil {
			return nil, err
		}
		if a.Timestamp, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		a.IPAddress, a.UserAgent = ip.String, ua.String
		if sd.Valid && sd.String != "" {
			if err := json.Unmarshal([]byte(sd.String), &a.SessionData); err != nil {
				return nil, err
			}
		}
		agreements = append(agreements, a)
	}
	return agreements, rows.Err()
}

// --- ENROLLMENTS ---

type sqliteEnrollmentRepository struct {
	db *sql.DB
}

func (r *sqliteEnrollmentRepository) Append(ctx context.Context, e domain.Enrollment) (string, error) {
	stmt, err := r.db.PrepareContext(ctx, `INSERT INTO enrollments(id, email, name, course_id, payment_plan,
		stripe_session_id, customer_id, subscription_id, enrolled_at, status) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, e.ID, e.Email, e.Name, e.CourseID, e.PaymentPlan,
		e.StripeSessionID, e.CustomerID, e.SubscriptionID, e.EnrolledAt.UTC().Format(time.RFC3339Nano), string(e.Status))
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *sqliteEnrollmentRepository) List(ctx context.Context) ([]domain.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, name, course_id, payment_plan,
		stripe_session_id, customer_id, subscription_id, enrolled_at, status FROM enrollments ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var (
			e                                                  domain.Enrollment
			email, name, sessionID, customerID, subscriptionID sql.NullString
			enrolledAt, status                                 string
		)
		if err := rows.Scan(&e.ID, &email, &name, &e.CourseID, &e.PaymentPlan,
			&sessionID, &customerID, &subscriptionID, &enrolledAt, &status); err != nil {
			return nil, err
		}
		if e.EnrolledAt, err = time.Parse(time.RFC3339Nano, enrolledAt); err != nil {
			return nil, err
		}
		e.Email, e.Name = email.String, name.String
		e.StripeSessionID, e.CustomerID = sessionID.String, customerID.String
		e.SubscriptionID = subscriptionID.String
		e.Status = domain.EnrollmentStatus(status)
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *sqliteEnrollmentRepository) RevokeBySubscription(ctx context.Context, subscriptionID string) (int, error) {
	return r.revoke(ctx, "subscription_id", subscriptionID)
}

func (r *sqliteEnrollmentRepository) RevokeByCustomer(ctx context.Context, customerID string) (int, error) {
	return r.revoke(ctx, "customer_id", customerID)
}

// column vem sempre dos métodos acima, nunca da entrada do usuário.
func (r *sqliteEnrollmentRepository) revoke(ctx context.Context, column, value string) (int, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE enrollments SET status = ? WHERE "+column+" = ? AND status = ?",
		string(domain.EnrollmentRevoked), value, string(domain.EnrollmentActive))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// --- INSTALLMENTS ---

type sqliteInstallmentLedger struct {
	db *sql.DB
}

// RecordPayment grava a fatura e conta as parcelas na mesma transação, para que duas
// entregas simultâneas nunca leiam a mesma contagem.
func (r *sqliteInstallmentLedger) RecordPayment(ctx context.Context, subscriptionID, invoiceID string) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO installment_payments(subscription_id, invoice_id, paid_at)
		VALUES(?, ?, ?)`, subscriptionID, invoiceID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	var count int
	row := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM installment_payments WHERE subscription_id = ?", subscriptionID)
	if err := row.Scan(&count); err != nil {
		return 0, false, err
	}
	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, affected == 1, nil
}
