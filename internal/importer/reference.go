package importer

import (
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	"gorm.io/gorm"
)

// ReferenceData is an immutable snapshot of the household's resources,
// read once at job start. Changes made while the import runs are not
// reflected mid-run.
type ReferenceData struct {
	HouseholdName string

	// Lookup by exact name
	Accounts       map[string]uuid.UUID
	Categories     map[string]uuid.UUID
	Counterparties map[string]uuid.UUID
	Tags           map[string]uuid.UUID

	// Reverse lookup for name fallbacks and membership checks
	AccountNames      map[uuid.UUID]string
	CategoryNames     map[uuid.UUID]string
	CounterpartyNames map[uuid.UUID]string
	TagNames          map[uuid.UUID]string
}

// LoadReferenceData reads the snapshot for one household.
func LoadReferenceData(db *gorm.DB, householdID uuid.UUID) (ReferenceData, error) {
	refs := ReferenceData{
		Accounts:          make(map[string]uuid.UUID),
		Categories:        make(map[string]uuid.UUID),
		Counterparties:    make(map[string]uuid.UUID),
		Tags:              make(map[string]uuid.UUID),
		AccountNames:      make(map[uuid.UUID]string),
		CategoryNames:     make(map[uuid.UUID]string),
		CounterpartyNames: make(map[uuid.UUID]string),
		TagNames:          make(map[uuid.UUID]string),
	}

	var household models.Household
	err := db.First(&household, householdID).Error
	if err != nil {
		return ReferenceData{}, err
	}
	refs.HouseholdName = household.Name

	var accounts []models.Account
	err = db.Where(&models.Account{HouseholdID: householdID}).Find(&accounts).Error
	if err != nil {
		return ReferenceData{}, err
	}
	for _, a := range accounts {
		refs.Accounts[a.Name] = a.ID
		refs.AccountNames[a.ID] = a.Name
	}

	var categories []models.Category
	err = db.Where(&models.Category{HouseholdID: householdID}).Find(&categories).Error
	if err != nil {
		return ReferenceData{}, err
	}
	for _, c := range categories {
		refs.Categories[c.Name] = c.ID
		refs.CategoryNames[c.ID] = c.Name
	}

	var counterparties []models.Counterparty
	err = db.Where(&models.Counterparty{HouseholdID: householdID}).Find(&counterparties).Error
	if err != nil {
		return ReferenceData{}, err
	}
	for _, c := range counterparties {
		refs.Counterparties[c.Name] = c.ID
		refs.CounterpartyNames[c.ID] = c.Name
	}

	var tags []models.Tag
	err = db.Where(&models.Tag{HouseholdID: householdID}).Find(&tags).Error
	if err != nil {
		return ReferenceData{}, err
	}
	for _, t := range tags {
		refs.Tags[t.Name] = t.ID
		refs.TagNames[t.ID] = t.Name
	}

	return refs, nil
}
