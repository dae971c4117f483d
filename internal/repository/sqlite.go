package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite abre o banco, confere a conexão e cria as tabelas.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializa as escritas; com ":memory:" cada conexão teria um banco próprio.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err = db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	if err = addSubscriptionColumn(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Bancos criados antes da coluna subscription_id recebem a coluna e o índice aqui.
func addSubscriptionColumn(db *sql.DB) error {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('enrollments') WHERE name = 'subscription_id'").Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := db.Exec("ALTER TABLE enrollments ADD COLUMN subscription_id TEXT"); err != nil {
			return err
		}
	}
	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_enrollments_subscription ON enrollments(subscription_id)")
	return err
}
