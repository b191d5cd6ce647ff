// internal/app/system/identity/identity.go

// Package identity derives role/office/campus claims from an institutional
// email address. The derivation runs exactly once, when a user record's
// claim fields are first populated (userstore.EnsureClaims); authorization
// never re-parses an email after that.
//
// Address scheme (local part, dot-delimited):
//
//	<office tokens...>.<campus code>@<domain>
//
// The final token is a campus code mapped through a fixed table; the
// remaining tokens joined with spaces form the office code. The literal
// segment "admin" marks an administrator. One reserved address maps to the
// superadmin, who has no office.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/reporthub/internal/domain/models"
)

// SuperAdminEmail is the reserved superadmin address.
const SuperAdminEmail = "superadmin@reporthub.edu.ph"

// ErrBadAddress is returned when an email cannot be parsed into claims.
var ErrBadAddress = errors.New("email does not follow the institutional address scheme")

// campusNames maps campus codes (the final local-part token) to display
// names. Codes outside this table are rejected.
var campusNames = map[string]string{
	"lp":  "Lipa",
	"lb":  "Lobo",
	"mn":  "Main",
	"ml":  "Malvar",
	"rs":  "Rosario",
	"sj":  "San Juan",
	"bl":  "Balayan",
	"lm":  "Lemery",
	"nas": "Nasugbu",
}

// Claims are the derived authorization fields.
type Claims struct {
	Role   string
	Office string
	Campus string
}

// CampusName resolves a campus code to its display name.
func CampusName(code string) (string, bool) {
	name, ok := campusNames[strings.ToLower(code)]
	return name, ok
}

// Parse derives claims from an email address.
func Parse(email string) (Claims, error) {
	addr := strings.ToLower(strings.TrimSpace(email))
	if addr == SuperAdminEmail {
		return Claims{Role: models.RoleSuperAdmin}, nil
	}

	at := strings.IndexByte(addr, '@')
	if at <= 0 {
		return Claims{}, fmt.Errorf("%w: %q", ErrBadAddress, email)
	}
	local := addr[:at]

	tokens := strings.Split(local, ".")
	if len(tokens) < 2 {
		return Claims{}, fmt.Errorf("%w: %q", ErrBadAddress, email)
	}

	campusCode := tokens[len(tokens)-1]
	campus, ok := CampusName(campusCode)
	if !ok {
		return Claims{}, fmt.Errorf("%w: unknown campus code %q", ErrBadAddress, campusCode)
	}

	officeTokens := tokens[:len(tokens)-1]
	role := models.RoleUser
	var officeParts []string
	for _, tok := range officeTokens {
		if tok == "admin" {
			role = models.RoleAdmin
			continue
		}
		if tok != "" {
			officeParts = append(officeParts, tok)
		}
	}

	office := strings.Join(officeParts, " ")
	if office == "" && role != models.RoleAdmin {
		return Claims{}, fmt.Errorf("%w: %q has no office tokens", ErrBadAddress, email)
	}

	return Claims{Role: role, Office: office, Campus: campus}, nil
}
