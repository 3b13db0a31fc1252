package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"
)

func TestIsDuplicate(t *testing.T) {
	dup := &driver.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry 'a@x.io' for key 'uq_users_email'"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate", dup, true},
		{"wrapped duplicate", fmt.Errorf("insert: %w", dup), true},
		{"other mysql error", &driver.MySQLError{Number: 1452}, false},
		{"plain error", errors.New("1062"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicate(tt.err); got != tt.want {
				t.Errorf("isDuplicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpen_InvalidDSN(t *testing.T) {
	if _, err := Open(context.Background(), Config{DSN: "not a dsn"}); err == nil {
		t.Fatal("expected an error for a malformed DSN")
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"Seoul":    "%Seoul%",
		"100%":     "%100!%%",
		"old_town": "%old!_town%",
		"wow!":     "%wow!!%",
		"":         "%%",
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
