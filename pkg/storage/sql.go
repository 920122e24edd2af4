package storage

import (
	"context"
	"database/sql"
	"encoding/base64"

	// We include the postgresql driver in our implementation, so users can pick "postgres" via configuration.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SQLConnectionString OptionKey = "sql-connection-string-option"
	SQLDriverName       OptionKey = "sql-driver-name-option"

	defaultSQLDriverName = "postgres"
)

func init() {
	if err := RegisterStorage(DatabaseSQL, func() ServiceStorage { return new(SQLDB) }); err != nil {
		panic(err)
	}
}

type SQLDB struct {
	db               *sql.DB
	connectionString string
}

func (s *SQLDB) Init(opts ...Option) error {
	connString, sqlDriverName, err := processSQLOptions(opts...)
	if err != nil {
		return err
	}
	s.connectionString = connString

	db, err := sql.Open(sqlDriverName, connString)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS key_values (
    namespace varchar NOT NULL,
    key varchar NOT NULL,
    value varchar,
    PRIMARY KEY (namespace, key)
);`)
	if err != nil {
		return errors.Wrap(err, "creating key_values table")
	}

	s.db = db
	return nil
}

func processSQLOptions(opts ...Option) (connString string, sqlDriverName string, err error) {
	if connString, err = stringOption(opts, SQLConnectionString); err != nil {
		return "", "", err
	}
	if sqlDriverName, err = stringOption(opts, SQLDriverName); err != nil {
		return "", "", err
	}
	if connString == "" {
		return "", "", errors.New("sql connection string must not be empty")
	}
	if sqlDriverName == "" {
		sqlDriverName = defaultSQLDriverName
	}
	return connString, sqlDriverName, nil
}

func (s *SQLDB) Type() Type {
	return DatabaseSQL
}

func (s *SQLDB) URI() string {
	return s.connectionString
}

func (s *SQLDB) IsOpen() bool {
	if err := s.db.Ping(); err != nil {
		logrus.WithError(err).Error("pinging db")
		return false
	}
	return true
}

func (s *SQLDB) Close() error {
	return s.db.Close()
}

func (s *SQLDB) Write(ctx context.Context, namespace, key string, value []byte) error {
	if namespace == "" || key == "" {
		return errors.New("namespace and key required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO key_values (namespace, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value`,
		namespace, key, base64.RawStdEncoding.EncodeToString(value))
	return err
}

func (s *SQLDB) Read(ctx context.Context, namespace, key string) ([]byte, error) {
	r := s.db.QueryRowContext(ctx, "SELECT value FROM key_values WHERE namespace = $1 AND key = $2", namespace, key)
	var value string
	if err := r.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return base64.RawStdEncoding.DecodeString(value)
}

func (s *SQLDB) ReadAll(ctx context.Context, namespace string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM key_values WHERE namespace = $1", namespace)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logrus.WithError(err).Error("closing rows")
		}
	}(rows)

	allValues := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		decoded, err := base64.RawStdEncoding.DecodeString(value)
		if err != nil {
			return nil, err
		}
		allValues[key] = decoded
	}
	return allValues, rows.Err()
}

func (s *SQLDB) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM key_values WHERE namespace = $1 AND key = $2", namespace, key)
	return err
}

var _ ServiceStorage = (*SQLDB)(nil)
