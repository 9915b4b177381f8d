package hospital

import (
	"context"
	"errors"
	"testing"
)

type fakeHospitalRepo struct {
	hospitals map[int64]*Hospital
	nextID    int64
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{hospitals: make(map[int64]*Hospital)}
}

func (r *fakeHospitalRepo) ListHospitals(ctx context.Context) ([]Hospital, error) {
	result := make([]Hospital, 0, len(r.hospitals))
	for id := int64(1); id <= r.nextID; id++ {
		if hospital, ok := r.hospitals[id]; ok {
			result = append(result, *hospital)
		}
	}
	return result, nil
}

func (r *fakeHospitalRepo) GetHospitalByID(ctx context.Context, id int64) (*Hospital, error) {
	hospital, ok := r.hospitals[id]
	if !ok {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (r *fakeHospitalRepo) CreateHospital(ctx context.Context, hospital *Hospital) error {
	r.nextID++
	hospital.ID = r.nextID
	r.hospitals[hospital.ID] = hospital
	return nil
}

func (r *fakeHospitalRepo) DeleteHospital(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.hospitals[id]; !ok {
		return false, nil
	}
	delete(r.hospitals, id)
	return true, nil
}

func TestCreateHospitalTrimsFields(t *testing.T) {
	repo := newFakeHospitalRepo()
	svc := NewService(repo)

	location := "  North Wing "
	blank := "   "
	result, err := svc.CreateHospital(context.Background(), CreateInput{Name: "  St. Mary ", Location: &location, ContactInfo: &blank})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != 1 {
		t.Fatalf("expected id 1, got %d", result.ID)
	}
	if result.Name != "St. Mary" {
		t.Fatalf("expected trimmed name, got %q", result.Name)
	}
	if result.Location == nil || *result.Location != "North Wing" {
		t.Fatalf("expected trimmed location, got %v", result.Location)
	}
	if result.ContactInfo != nil {
		t.Fatalf("expected blank contact to be dropped, got %q", *result.ContactInfo)
	}
}

func TestCreateHospitalRequiresName(t *testing.T) {
	svc := NewService(newFakeHospitalRepo())
	_, err := svc.CreateHospital(context.Background(), CreateInput{Name: " "})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestDeleteHospitalNotFound(t *testing.T) {
	svc := NewService(newFakeHospitalRepo())
	err := svc.DeleteHospital(context.Background(), 42)
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestDeleteHospital(t *testing.T) {
	repo := newFakeHospitalRepo()
	svc := NewService(repo)
	created, err := svc.CreateHospital(context.Background(), CreateInput{Name: "General"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeleteHospital(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.GetHospital(context.Background(), created.ID); !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected hospital removed, got %v", err)
	}
}
