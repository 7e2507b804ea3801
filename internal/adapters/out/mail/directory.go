package mail

import (
	"context"
	"fmt"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// StaticDirectory implements ports.RecipientDirectory from configuration.
type StaticDirectory struct {
	admins      []string
	departments map[string][]string
}

// NewStaticDirectory parses ADMIN_EMAILS ("a@x,b@y") and DEPARTMENT_EMAILS
// ("<department uuid>=a@x|b@y;<department uuid>=c@z").
func NewStaticDirectory(adminEmails, departmentEmails string) (*StaticDirectory, error) {
	departments, err := parseDepartments(departmentEmails)
	if err != nil {
		return nil, err
	}
	return &StaticDirectory{
		admins:      splitAddresses(adminEmails, ","),
		departments: departments,
	}, nil
}

func (d *StaticDirectory) AdminAddresses(_ context.Context) ([]string, error) {
	return append([]string(nil), d.admins...), nil
}

func (d *StaticDirectory) DepartmentAddresses(_ context.Context, departmentID string) ([]string, error) {
	return append([]string(nil), d.departments[strings.ToLower(departmentID)]...), nil
}

func parseDepartments(s string) (map[string][]string, error) {
	departments := make(map[string][]string)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, addresses, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("department emails",
				fmt.Errorf("entry %q has no '='", entry))
		}
		departmentID, err := kernel.UUIDFromString(strings.TrimSpace(id))
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("department emails", err)
		}

		key := departmentID.String()
		departments[key] = append(departments[key], splitAddresses(addresses, "|")...)
	}
	return departments, nil
}

func splitAddresses(s, sep string) []string {
	addresses := []string{}
	for _, a := range strings.Split(s, sep) {
		if a = strings.TrimSpace(a); a != "" {
			addresses = append(addresses, a)
		}
	}
	return addresses
}
