package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veasna/clinic/internal/platform/apperr"
)

func TestTranslate_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "visits_patient_location_date_queue_key"}
	err := Translate(pgErr, "queue number already taken for this clinic day")

	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %s", apperr.KindOf(err))
	}
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		t.Error("underlying pg error lost in translation")
	}
}

func TestTranslate_ForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	err := Translate(pgErr, "referenced visit does not exist")
	if apperr.KindOf(err) != apperr.KindInvalid {
		t.Errorf("expected invalid_argument, got %s", apperr.KindOf(err))
	}
}

func TestTranslate_NoRows(t *testing.T) {
	err := Translate(pgx.ErrNoRows, "patient not found")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not_found, got %s", apperr.KindOf(err))
	}
}

func TestTranslate_Nil(t *testing.T) {
	if Translate(nil, "ignored") != nil {
		t.Error("nil must pass through")
	}
}

func TestTranslate_Unknown(t *testing.T) {
	err := Translate(errors.New("socket closed"), "ignored")
	if apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected internal, got %s", apperr.KindOf(err))
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "pharmacy_name_key"}
	if !IsUniqueViolation(pgErr, "") {
		t.Error("expected match on any constraint")
	}
	if !IsUniqueViolation(pgErr, "pharmacy_name_key") {
		t.Error("expected match on named constraint")
	}
	if IsUniqueViolation(pgErr, "other_key") {
		t.Error("unexpected match on different constraint")
	}
	if IsUniqueViolation(errors.New("boom"), "") {
		t.Error("plain error must not match")
	}
}
