package visit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/domain/patient"
	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/pkg/date"
)

type naturalKey struct {
	patientID  int64
	locationID int64
	day        string
	queueNo    string
}

type mockRepo struct {
	byID   map[int64]Visit
	byKey  map[naturalKey]int64
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[int64]Visit), byKey: make(map[naturalKey]int64), nextID: 1}
}

func keyOf(v Visit) naturalKey {
	return naturalKey{v.PatientID, v.LocationID, v.VisitDate.String(), v.QueueNo}
}

func (m *mockRepo) Create(_ context.Context, in ResolveInput, updatedBy int64) (Visit, error) {
	v := Visit{
		ID: m.nextID, PatientID: in.PatientID, LocationID: in.LocationID,
		VisitDate: in.VisitDate, QueueNo: in.QueueNo,
		LastUpdatedAt: time.Now(), CreatedAt: time.Now(),
	}
	if _, exists := m.byKey[keyOf(v)]; exists {
		return Visit{}, apperr.Conflict("duplicate queue number for this location and date")
	}
	m.nextID++
	m.byID[v.ID] = v
	m.byKey[keyOf(v)] = v.ID
	return v, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (Visit, error) {
	v, ok := m.byID[id]
	if !ok {
		return Visit{}, apperr.NotFound("visit not found")
	}
	return v, nil
}

func (m *mockRepo) FindByNaturalKey(_ context.Context, patientID, locationID int64, day date.Date, queueNo string) (*Visit, error) {
	id, ok := m.byKey[naturalKey{patientID, locationID, day.String(), queueNo}]
	if !ok {
		return nil, nil
	}
	v := m.byID[id]
	return &v, nil
}

func (m *mockRepo) FindByDay(_ context.Context, patientID, locationID int64, day date.Date) (*Visit, error) {
	for _, v := range m.byID {
		if v.PatientID == patientID && v.LocationID == locationID && v.VisitDate.Equal(day) {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) SetQueueNo(_ context.Context, id int64, queueNo string, _ int64) (Visit, error) {
	v, ok := m.byID[id]
	if !ok {
		return Visit{}, apperr.NotFound("visit not found")
	}
	next := v
	next.QueueNo = queueNo
	if other, exists := m.byKey[keyOf(next)]; exists && other != id {
		return Visit{}, apperr.Conflict("duplicate queue number for this location and date")
	}
	delete(m.byKey, keyOf(v))
	next.LastUpdatedAt = time.Now()
	m.byID[id] = next
	m.byKey[keyOf(next)] = id
	return next, nil
}

func (m *mockRepo) ListByLocationAndDate(_ context.Context, _ int64, _ date.Date) ([]QueueEntry, error) {
	return nil, nil
}

func (m *mockRepo) PatientHeader(_ context.Context, patientID int64) (PatientHeader, error) {
	return PatientHeader{ID: patientID, EnglishName: "Alice"}, nil
}

// mockPatients records mirror writes; unneeded Repository methods panic if
// reached.
type mockPatients struct {
	patient.Repository
	queueNos map[int64]string
	failNext bool
}

func newMockPatients() *mockPatients {
	return &mockPatients{queueNos: make(map[int64]string)}
}

func (m *mockPatients) SetQueueNo(_ context.Context, id int64, queueNo string) error {
	if m.failNext {
		m.failNext = false
		return apperr.Internal(os.ErrClosed)
	}
	m.queueNos[id] = queueNo
	return nil
}

// emptyRecords serves a visit with no clinical records yet.
type emptyRecords struct {
	record.Repository
}

func (emptyRecords) GetVitals(context.Context, int64) (*record.Vitals, error)             { return nil, nil }
func (emptyRecords) GetHEF(context.Context, int64) (*record.HEF, error)                   { return nil, nil }
func (emptyRecords) GetVisualAcuity(context.Context, int64) (*record.VisualAcuity, error) { return nil, nil }
func (emptyRecords) GetPresentingComplaint(context.Context, int64) (*record.PresentingComplaint, error) {
	return nil, nil
}
func (emptyRecords) GetHistory(context.Context, int64) (*record.History, error) { return nil, nil }
func (emptyRecords) GetSeva(context.Context, int64) (*record.Seva, error)       { return nil, nil }
func (emptyRecords) GetPhysiotherapy(context.Context, int64) (*record.Physiotherapy, error) {
	return nil, nil
}
func (emptyRecords) GetConsultation(context.Context, int64) (*record.ConsultationDetail, error) {
	return nil, nil
}
func (emptyRecords) GetReferral(context.Context, int64) (*record.Referral, error) { return nil, nil }

func newService(repo Repository, patients patient.Repository) *Service {
	return NewService(repo, patients, emptyRecords{}, zerolog.New(os.Stderr))
}

func day(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestResolve_CreatesThenReturnsSameVisit(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	in := ResolveInput{PatientID: 1, LocationID: 2, VisitDate: day(t, "2025-11-03"), QueueNo: "2a"}

	first, err := svc.Resolve(context.Background(), in, 0)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if first.QueueNo != "2A" {
		t.Errorf("token not normalized: %q", first.QueueNo)
	}

	second, err := svc.Resolve(context.Background(), in, 0)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("resolve not idempotent: ids %d and %d", first.ID, second.ID)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected one visit row, got %d", len(repo.byID))
	}
}

func TestResolve_NormalizationVariantsHitSameVisit(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	base := ResolveInput{PatientID: 1, LocationID: 2, VisitDate: day(t, "2025-11-03")}
	var firstID int64
	for i, token := range []string{"2a", " 2A ", "2A"} {
		in := base
		in.QueueNo = token
		v, err := svc.Resolve(context.Background(), in, 0)
		if err != nil {
			t.Fatalf("resolve %q: %v", token, err)
		}
		if i == 0 {
			firstID = v.ID
		} else if v.ID != firstID {
			t.Errorf("token %q resolved to a different visit", token)
		}
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected one visit row, got %d", len(repo.byID))
	}
}

func TestResolve_Validation(t *testing.T) {
	svc := newService(newMockRepo(), newMockPatients())

	cases := []ResolveInput{
		{LocationID: 1, QueueNo: "2"},                // missing patient
		{PatientID: 1, QueueNo: "2"},                 // missing location
		{PatientID: 1, LocationID: 1},                // missing token
		{PatientID: 1, LocationID: 1, QueueNo: "A2"}, // malformed token
	}
	for i, in := range cases {
		if _, err := svc.Resolve(context.Background(), in, 0); apperr.KindOf(err) != apperr.KindInvalid {
			t.Errorf("case %d: expected invalid_argument, got %v", i, err)
		}
	}
}

func TestResolve_DefaultsDateToToday(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	v, err := svc.Resolve(context.Background(), ResolveInput{PatientID: 1, LocationID: 2, QueueNo: "3"}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !v.VisitDate.Equal(date.Today()) {
		t.Errorf("expected today's date, got %s", v.VisitDate)
	}
}

func TestSetQueueNumber_MirrorsOntoPatient(t *testing.T) {
	repo := newMockRepo()
	patients := newMockPatients()
	svc := newService(repo, patients)

	v, err := svc.Resolve(context.Background(), ResolveInput{
		PatientID: 9, LocationID: 2, VisitDate: day(t, "2025-11-03"), QueueNo: "5",
	}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	updated, err := svc.SetQueueNumber(context.Background(), v.ID, " 7b ", 0)
	if err != nil {
		t.Fatalf("set queue number: %v", err)
	}
	if updated.QueueNo != "7B" {
		t.Errorf("token not normalized on update: %q", updated.QueueNo)
	}
	if patients.queueNos[9] != "7B" {
		t.Errorf("mirror not written: %q", patients.queueNos[9])
	}
}

func TestSetQueueNumber_DuplicateTokenConflicts(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	d := day(t, "2025-11-03")
	if _, err := svc.Resolve(context.Background(), ResolveInput{PatientID: 1, LocationID: 2, VisitDate: d, QueueNo: "1"}, 0); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v2, err := svc.Resolve(context.Background(), ResolveInput{PatientID: 1, LocationID: 2, VisitDate: d, QueueNo: "2"}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	_, err = svc.SetQueueNumber(context.Background(), v2.ID, "1", 0)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestSetQueueNumber_MirrorFailureFailsCall(t *testing.T) {
	repo := newMockRepo()
	patients := newMockPatients()
	svc := newService(repo, patients)

	v, err := svc.Resolve(context.Background(), ResolveInput{
		PatientID: 1, LocationID: 2, VisitDate: day(t, "2025-11-03"), QueueNo: "5",
	}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	patients.failNext = true
	if _, err := svc.SetQueueNumber(context.Background(), v.ID, "6", 0); err == nil {
		t.Error("expected error when the mirror write fails")
	}
}

func TestUpsertDayVisit_OverwritesExistingToken(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	d := day(t, "2025-11-03")
	first, err := svc.Resolve(context.Background(), ResolveInput{PatientID: 1, LocationID: 2, VisitDate: d, QueueNo: "4"}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	updated, err := svc.UpsertDayVisit(context.Background(), ResolveInput{PatientID: 1, LocationID: 2, VisitDate: d, QueueNo: "6"}, 0)
	if err != nil {
		t.Fatalf("upsert day visit: %v", err)
	}
	if updated.ID != first.ID {
		t.Errorf("expected the same visit reused, got %d and %d", first.ID, updated.ID)
	}
	if updated.QueueNo != "6" {
		t.Errorf("token not overwritten: %q", updated.QueueNo)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected one visit row, got %d", len(repo.byID))
	}
}

func TestUpsertDayVisit_CreatesWhenNone(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	v, err := svc.UpsertDayVisit(context.Background(), ResolveInput{
		PatientID: 1, LocationID: 2, VisitDate: day(t, "2025-11-03"), QueueNo: "4",
	}, 0)
	if err != nil {
		t.Fatalf("upsert day visit: %v", err)
	}
	if v.ID == 0 || v.QueueNo != "4" {
		t.Errorf("unexpected visit: %+v", v)
	}
}

func TestDetail_AssemblesVisitAndHeader(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockPatients())

	v, err := svc.Resolve(context.Background(), ResolveInput{
		PatientID: 4, LocationID: 2, VisitDate: day(t, "2025-11-03"), QueueNo: "8",
	}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	d, err := svc.Detail(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Visit.ID != v.ID || d.Patient.ID != 4 {
		t.Errorf("detail mismatch: %+v", d)
	}
	if d.Records.Vitals != nil || d.Records.Consultation != nil {
		t.Error("expected empty records for a fresh visit")
	}
}
