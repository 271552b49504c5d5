// internal/listview/config.go
package listview

import (
	"time"

	"msm-console/internal/pkg/paging"
)

const (
	DefaultSort     = "-createdAt"
	DefaultDebounce = 500 * time.Millisecond
)

// Config describes one list screen.
type Config struct {
	Entity string
	// SearchFields are matched with the contains operator.
	SearchFields []string
	// Scoped screens filter by the active company.
	Scoped bool

	DefaultSort string
	Dialect     paging.Dialect
	// DefaultColumnSort is the column sort a screen opens with.
	DefaultColumnSort []paging.SortField
	// PresetColumn is a column whose sort leaves the preset in charge, as the
	// user screen does with its default "name" sort.
	PresetColumn string

	// Columns maps column ids to their default visibility.
	Columns map[string]bool

	PageSize int
	Debounce time.Duration
}

func (c Config) withDefaults() Config {
	if c.DefaultSort == "" {
		c.DefaultSort = DefaultSort
	}
	if c.PageSize < 1 {
		c.PageSize = paging.DefaultPageSize
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	return c
}

// Screens returns the list screens of the console.
func Screens(pageSize int, debounce time.Duration) map[string]Config {
	base := func(c Config) Config {
		c.PageSize = pageSize
		c.Debounce = debounce
		return c.withDefaults()
	}

	return map[string]Config{
		"roles": base(Config{
			Entity:       "roles",
			SearchFields: []string{"name", "description"},
			Columns:      map[string]bool{"name": true, "description": false, "isLocked": true, "createdAt": true},
		}),
		"users": base(Config{
			Entity:            "users",
			SearchFields:      []string{"name", "email", "phoneNumber"},
			Dialect:           paging.DialectNamed,
			DefaultColumnSort: []paging.SortField{{Field: "name"}},
			PresetColumn:      "name",
			Columns: map[string]bool{
				"name": true, "email": true, "roleName": true,
				"phoneNumber": false, "createdAt": false, "updatedAt": false,
			},
		}),
		"tickets": base(Config{
			Entity:       "tickets",
			SearchFields: []string{"title", "description"},
			Columns: map[string]bool{
				"title": true, "status": true, "priority": true,
				"description": false, "assignedAgentID": false, "createdAt": true,
			},
		}),
		"companies": base(Config{
			Entity:       "companies",
			SearchFields: []string{"name", "code"},
			Columns:      map[string]bool{"name": true, "code": true, "address": false, "phone": true, "email": true},
		}),
		"machines": base(Config{
			Entity:       "machines",
			SearchFields: []string{"name", "code", "description"},
			Scoped:       true,
			Columns:      map[string]bool{"name": true, "code": true, "brandName": true, "description": false},
		}),
		"bank-accounts": base(Config{
			Entity:       "bank-accounts",
			SearchFields: []string{"bankName", "accountNumber", "accountName"},
			Scoped:       true,
			Columns:      map[string]bool{"bankName": true, "accountNumber": true, "accountName": true},
		}),
		"brands": base(Config{
			Entity:       "brands",
			SearchFields: []string{"name"},
			Scoped:       true,
			Columns:      map[string]bool{"name": true, "createdAt": true},
		}),
		"customers": base(Config{
			Entity:       "customers",
			SearchFields: []string{"name", "email", "phoneNumber"},
			Scoped:       true,
			Columns:      map[string]bool{"name": true, "email": true, "phoneNumber": true, "address": false},
		}),
		"agreements": base(Config{
			Entity:       "agreements",
			SearchFields: []string{"number", "status"},
			Scoped:       true,
			Columns:      map[string]bool{"number": true, "startDate": true, "endDate": true, "amount": true, "status": true},
		}),
		"invoices": base(Config{
			Entity:       "invoices",
			SearchFields: []string{"number", "status"},
			Scoped:       true,
			Columns:      map[string]bool{"number": true, "issueDate": true, "dueDate": true, "total": true, "status": true},
		}),
	}
}
