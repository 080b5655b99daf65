package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/importer/reader"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// dateLayouts are tried in order when a column mapping has no format
// hint. ISO 8601 first.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	time.RFC3339,
}

// DefaultTagDelimiter splits multiple tag names within one field.
const DefaultTagDelimiter = ","

// Draft is a transformed row that is ready to persist.
type Draft struct {
	Row         int
	Transaction models.Transaction
	TagIDs      []uuid.UUID

	// Warnings are soft field resolution failures that do not block
	// creation, e.g. an unknown category.
	Warnings []string
}

// Transformer turns raw rows into transaction drafts.
//
// All lookups go against data loaded at construction time, a Transformer
// never touches the database. This keeps TransformRow a pure function
// over the row.
type Transformer struct {
	Columns      ColumnTable
	Values       *ValueResolver
	Refs         ReferenceData
	Rules        []models.CategorizationRule
	Locale       language.Tag
	TagDelimiter string
}

// TransformRow produces either a draft or the row's errors.
//
// Rows with hard errors (amount, dates, account, household) are rejected
// entirely and all their errors are reported. Soft failures on optional
// references become warnings on the draft.
func (t *Transformer) TransformRow(row reader.Row) (Draft, []RowError) {
	draft := Draft{Row: row.Index}
	var errs []RowError

	fail := func(field Field, value string, err error) {
		errs = append(errs, RowError{Row: row.Index, Field: field, Value: value, Err: err})
	}

	warn := func(format string, args ...any) {
		draft.Warnings = append(draft.Warnings, fmt.Sprintf(format, args...))
	}

	// household: when mapped, the value must name the job's household.
	// The job already belongs to a household, so this is a consistency
	// check, not a lookup.
	if raw, ok := t.raw(row, FieldHousehold); ok && raw != "" && raw != t.Refs.HouseholdName {
		fail(FieldHousehold, raw, fmt.Errorf("household %w: the job belongs to %q", ErrUnresolvedReference, t.Refs.HouseholdName))
	}

	// account: hard requirement
	if raw, ok := t.raw(row, FieldAccount); ok {
		id, found := t.resolveReference(models.TargetAccount, t.Refs.Accounts, t.Refs.AccountNames, raw)
		if !found {
			fail(FieldAccount, raw, fmt.Errorf("account %w", ErrUnresolvedReference))
		} else {
			draft.Transaction.AccountID = id
		}
	} else {
		fail(FieldAccount, "", fmt.Errorf("account %w", ErrUnresolvedReference))
	}

	// amount
	if raw, ok := t.raw(row, FieldAmount); ok {
		amount, err := parseAmount(raw, t.Locale)
		if err != nil {
			fail(FieldAmount, raw, ErrInvalidAmount)
		} else {
			draft.Transaction.Amount = amount
		}
	}

	// valueDate: hard requirement
	if raw, ok := t.raw(row, FieldValueDate); ok {
		date, err := t.parseDate(FieldValueDate, raw)
		if err != nil {
			fail(FieldValueDate, raw, ErrInvalidDate)
		} else {
			draft.Transaction.ValueDate = date
		}
	} else {
		fail(FieldValueDate, "", ErrInvalidDate)
	}

	// valueDateUntil: optional, but when present it must parse
	if raw, ok := t.raw(row, FieldValueDateUntil); ok && raw != "" {
		date, err := t.parseDate(FieldValueDateUntil, raw)
		if err != nil {
			fail(FieldValueDateUntil, raw, ErrInvalidDate)
		} else {
			draft.Transaction.ValueDateUntil = &date
		}
	}

	// counterparty: soft
	var counterpartyRaw string
	if raw, ok := t.raw(row, FieldCounterparty); ok && raw != "" {
		counterpartyRaw = raw
		id, found := t.resolveReference(models.TargetCounterparty, t.Refs.Counterparties, t.Refs.CounterpartyNames, raw)
		if found {
			draft.Transaction.CounterpartyID = &id
		} else {
			warn("counterparty %q could not be resolved, the transaction has no counterparty", raw)
		}
	}

	// category: soft, with categorization rules as fallback
	if raw, ok := t.raw(row, FieldCategory); ok && raw != "" {
		id, found := t.resolveReference(models.TargetCategory, t.Refs.Categories, t.Refs.CategoryNames, raw)
		if found {
			draft.Transaction.CategoryID = &id
		} else {
			warn("category %q could not be resolved, the transaction has no category", raw)
		}
	}

	nameRaw, _ := t.raw(row, FieldName)

	if draft.Transaction.CategoryID == nil {
		if id, rule := t.applyRules(counterpartyRaw, nameRaw); rule != nil {
			draft.Transaction.CategoryID = &id
			warn("category set to %q by rule matching %q", t.Refs.CategoryNames[id], rule.Match)
		}
	}

	// tags: each token resolves independently, unresolved tokens are
	// dropped with a warning
	if raw, ok := t.raw(row, FieldTags); ok && raw != "" {
		delimiter := t.TagDelimiter
		if delimiter == "" {
			delimiter = DefaultTagDelimiter
		}

		for _, token := range strings.Split(raw, delimiter) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			id, found := t.resolveReference(models.TargetTag, t.Refs.Tags, t.Refs.TagNames, token)
			if found {
				draft.TagIDs = append(draft.TagIDs, id)
			} else {
				warn("tag %q could not be resolved and was dropped", token)
			}
		}
	}

	// name/description: literal text, name falls back to the category or
	// counterparty name, then to a generic placeholder
	draft.Transaction.Name = strings.TrimSpace(nameRaw)
	if draft.Transaction.Name == "" {
		switch {
		case draft.Transaction.CategoryID != nil:
			draft.Transaction.Name = t.Refs.CategoryNames[*draft.Transaction.CategoryID]
		case draft.Transaction.CounterpartyID != nil:
			draft.Transaction.Name = t.Refs.CounterpartyNames[*draft.Transaction.CounterpartyID]
		default:
			draft.Transaction.Name = "Imported transaction"
		}
	}

	if raw, ok := t.raw(row, FieldDescription); ok {
		draft.Transaction.Description = raw
	}

	if len(errs) > 0 {
		return Draft{}, errs
	}

	draft.Transaction.ImportWarnings = strings.Join(draft.Warnings, "\n")

	return draft, nil
}

// raw returns the row's value for a mapped field. ok is false when the
// field has no column in this import.
func (t *Transformer) raw(row reader.Row, field Field) (string, bool) {
	col, ok := t.Columns[field]
	if !ok {
		return "", false
	}

	return row.Values[col.Header], true
}

// resolveReference resolves raw text to a resource ID: value mappings
// first, then an exact name match. Mapped IDs must belong to the
// household's snapshot, a stale mapping does not resolve.
func (t *Transformer) resolveReference(targetType models.ValueTargetType, byName map[string]uuid.UUID, names map[uuid.UUID]string, raw string) (uuid.UUID, bool) {
	if id, ok := t.Values.Resolve(targetType, raw); ok {
		if _, known := names[id]; known {
			return id, true
		}
	}

	id, ok := byName[raw]
	return id, ok
}

// applyRules finds the first categorization rule whose glob pattern
// matches the counterparty text or, failing that, the name text. Rules
// are expected in priority order.
func (t *Transformer) applyRules(counterparty, name string) (uuid.UUID, *models.CategorizationRule) {
	for i := range t.Rules {
		rule := &t.Rules[i]

		if counterparty != "" && glob.Glob(rule.Match, counterparty) {
			return rule.CategoryID, rule
		}

		if name != "" && glob.Glob(rule.Match, name) {
			return rule.CategoryID, rule
		}
	}

	return uuid.Nil, nil
}

// parseDate parses with the column's format hint if one is configured,
// otherwise it tries the common layouts in order.
func (t *Transformer) parseDate(field Field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if format := t.Columns[field].Format; format != "" {
		return time.Parse(format, raw)
	}

	var err error
	for _, layout := range dateLayouts {
		var date time.Time
		date, err = time.Parse(layout, raw)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, err
}

// parseAmount parses a localized decimal number.
//
// For locales that write decimal commas (e.g. de), dots are grouping
// separators and the comma is the decimal separator. For everything
// else commas are grouping separators.
func parseAmount(raw string, locale language.Tag) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")

	if commaDecimal(locale) {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	return decimal.NewFromString(s)
}

// commaDecimal reports whether the locale writes decimal commas.
func commaDecimal(tag language.Tag) bool {
	base, _ := tag.Base()
	switch base.String() {
	case "de", "fr", "es", "it", "nl", "pt", "fi", "sv", "da", "nb", "no", "pl", "cs", "tr", "ru":
		return true
	}

	return false
}
