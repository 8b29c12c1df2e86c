package service

import (
	"path/filepath"
	"testing"

	"github.com/samikd35/RebootEarth-Dana/internal/database"
	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/repository"
)

func newTestFarmerService(t *testing.T) *FarmerService {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFarmerService(repository.NewFarmerRepository(db))
}

func registerFarmer(t *testing.T, svc *FarmerService, name, phone, location string, lat, lon float64) {
	t.Helper()
	created, err := svc.AddFarmer(&models.FarmerContact{
		Name:        name,
		PhoneNumber: phone,
		Location:    location,
		Latitude:    lat,
		Longitude:   lon,
	})
	if err != nil {
		t.Fatalf("AddFarmer(%s) error = %v", name, err)
	}
	if !created {
		t.Fatalf("AddFarmer(%s) = false, want true", name)
	}
}

func TestAddFarmerValidation(t *testing.T) {
	svc := newTestFarmerService(t)

	cases := []struct {
		name   string
		farmer models.FarmerContact
	}{
		{"missing name", models.FarmerContact{PhoneNumber: "0912345678", Location: "Adama"}},
		{"missing phone", models.FarmerContact{Name: "Abebe", Location: "Adama"}},
		{"missing location", models.FarmerContact{Name: "Abebe", PhoneNumber: "0912345678"}},
		{"bad coordinate", models.FarmerContact{Name: "Abebe", PhoneNumber: "0912345678", Location: "Adama", Latitude: 95}},
		{"bad language", models.FarmerContact{Name: "Abebe", PhoneNumber: "0912345678", Location: "Adama", PreferredLanguage: "latin"}},
	}
	for _, tc := range cases {
		farmer := tc.farmer
		if _, err := svc.AddFarmer(&farmer); err == nil {
			t.Errorf("%s: AddFarmer() = nil error, want error", tc.name)
		}
	}
}

func TestAddFarmerNormalizesPhoneAndLanguage(t *testing.T) {
	svc := newTestFarmerService(t)

	farmer := models.FarmerContact{
		Name:        "Abebe",
		PhoneNumber: "0912345678",
		Location:    "Adama",
		Latitude:    8.54,
		Longitude:   39.27,
	}
	created, err := svc.AddFarmer(&farmer)
	if err != nil || !created {
		t.Fatalf("AddFarmer() = %v, %v", created, err)
	}
	if farmer.PhoneNumber != "+251912345678" {
		t.Errorf("PhoneNumber = %q, want +251912345678", farmer.PhoneNumber)
	}
	if farmer.PreferredLanguage != "english" {
		t.Errorf("PreferredLanguage = %q, want english default", farmer.PreferredLanguage)
	}
}

func TestGetFarmersNear(t *testing.T) {
	svc := newTestFarmerService(t)

	// Addis Ababa, a point ~3km away, and Adama ~75km away.
	registerFarmer(t, svc, "Abebe", "+251911111111", "Addis", 9.0320, 38.7469)
	registerFarmer(t, svc, "Chaltu", "+251922222222", "Addis", 9.0100, 38.7600)
	registerFarmer(t, svc, "Tigist", "+251933333333", "Adama", 8.5414, 39.2689)

	near, err := svc.GetFarmersNear(models.Coordinate{Latitude: 9.0320, Longitude: 38.7469}, 10000)
	if err != nil {
		t.Fatalf("GetFarmersNear() error = %v", err)
	}
	if len(near) != 2 {
		t.Fatalf("len(near) = %d, want 2", len(near))
	}
	if near[0].Farmer.Name != "Abebe" {
		t.Errorf("nearest = %s, want Abebe", near[0].Farmer.Name)
	}
	if near[0].DistanceMeters > near[1].DistanceMeters {
		t.Error("results not sorted by distance")
	}
	if near[1].DistanceMeters > 10000 {
		t.Errorf("farmer beyond radius included: %v m", near[1].DistanceMeters)
	}

	if _, err := svc.GetFarmersNear(models.Coordinate{Latitude: 95}, 1000); err == nil {
		t.Error("GetFarmersNear() with bad coordinate = nil error, want error")
	}
	if _, err := svc.GetFarmersNear(models.Coordinate{}, 0); err == nil {
		t.Error("GetFarmersNear() with zero radius = nil error, want error")
	}
}
