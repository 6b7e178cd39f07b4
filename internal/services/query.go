package services

import (
	"context"
	"time"

	"github.com/ledgerline/contracts/internal/models"
)

// CalendarEntry is one row of the Gantt/calendar feed.
type CalendarEntry struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	AllDay    bool       `json:"all_day"`
}

// EventsBetween returns the contracts overlapping [start, end] for calendar
// rendering. Cancelled contracts are excluded; open-ended contracts overlap
// everything past their start date. Filters narrow by party.
func (s *ContractService) EventsBetween(ctx context.Context, start, end time.Time, f ListFilter) ([]CalendarEntry, error) {
	q := s.DB.WithContext(ctx).Model(&models.Contract{}).
		Where("docstatus < ?", models.DocstatusCancelled).
		Where("start_date <= ?", end).
		Where("(end_date IS NULL OR end_date >= ?)", start)
	if f.PartyName != "" {
		q = q.Where("party_name = ?", f.PartyName)
	}
	if f.PartyType != "" {
		q = q.Where("party_type = ?", f.PartyType)
	}

	var rows []models.Contract
	if err := q.Select("name", "start_date", "end_date").Order("start_date asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]CalendarEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CalendarEntry{
			Name:      row.Name,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}
	return entries, nil
}

// PartyUsers is the typeahead behind the "signed by party" picker: users
// reachable from the party's contacts, optionally narrowed by a search
// fragment. Only Customer and Supplier parties have contact links.
func (s *ContractService) PartyUsers(ctx context.Context, partyType, partyName, txt string) ([]string, error) {
	if partyType != models.PartyCustomer && partyType != models.PartySupplier {
		return nil, nil
	}

	var emails []string
	q := s.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN contacts ON contacts.user_email = users.email").
		Joins("JOIN contact_links ON contact_links.contact_id = contacts.id").
		Where("contact_links.link_doctype = ? AND contact_links.link_name = ?", partyType, partyName)
	if txt != "" {
		q = q.Where("users.email LIKE ?", "%"+txt+"%")
	}
	res := q.Distinct().Order("users.email asc").Pluck("users.email", &emails)
	return emails, res.Error
}
