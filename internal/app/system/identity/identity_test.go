package identity_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/reporthub/internal/app/system/identity"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  identity.Claims
	}{
		{
			name:  "office user",
			email: "registrar.lp@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleUser, Office: "registrar", Campus: "Lipa"},
		},
		{
			name:  "multi-token office",
			email: "student.affairs.mn@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleUser, Office: "student affairs", Campus: "Main"},
		},
		{
			name:  "admin segment",
			email: "records.admin.sj@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleAdmin, Office: "records", Campus: "San Juan"},
		},
		{
			name:  "admin with no office",
			email: "admin.nas@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleAdmin, Office: "", Campus: "Nasugbu"},
		},
		{
			name:  "reserved superadmin",
			email: "superadmin@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleSuperAdmin},
		},
		{
			name:  "mixed case is folded",
			email: "Registrar.LP@reporthub.edu.ph",
			want:  identity.Claims{Role: models.RoleUser, Office: "registrar", Campus: "Lipa"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := identity.Parse(tc.email)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.email, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q): got %+v, want %+v", tc.email, got, tc.want)
			}
		})
	}
}

func TestParse_BadAddresses(t *testing.T) {
	bad := []string{
		"",
		"no-at-sign",
		"@reporthub.edu.ph",
		"single@reporthub.edu.ph",          // no campus token
		"registrar.xx@reporthub.edu.ph",    // unknown campus code
		"admin@reporthub.edu.ph",           // admin needs a campus token too
		".lp@reporthub.edu.ph",             // empty office for plain user
	}
	for _, email := range bad {
		if _, err := identity.Parse(email); !errors.Is(err, identity.ErrBadAddress) {
			t.Errorf("Parse(%q): expected ErrBadAddress, got %v", email, err)
		}
	}
}

func TestCampusName(t *testing.T) {
	if name, ok := identity.CampusName("LM"); !ok || name != "Lemery" {
		t.Errorf("CampusName(LM): got %q, %v", name, ok)
	}
	if _, ok := identity.CampusName("zz"); ok {
		t.Error("expected unknown campus code to miss")
	}
}
