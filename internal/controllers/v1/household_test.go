package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/kassenbuch/backend/internal/controllers/v1"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestHouseholdCreate() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{
		Name:     "Familie Schmidt",
		Note:     "Our shared finances",
		Currency: "EUR",
	})

	assert.Equal(suite.T(), "Familie Schmidt", household.Data.Name)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/households/%s", household.Data.ID), household.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestHouseholdCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/households", `{ Invalid request": Body }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var res v1.HouseholdCreateResponse
	test.DecodeResponse(suite.T(), &r, &res)

	assert.Equal(suite.T(), httputil.ErrInvalidBody.Error(), *res.Error)
	assert.Nil(suite.T(), res.Data)
}

func (suite *TestSuiteStandard) TestHouseholdGetSingle() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Existing", household.Data.Links.Self, http.StatusOK},
		{"Does not exist", "http://example.com/v1/households/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0", http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v1/households/NotAUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdUpdate() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "Familie Muster"})

	r := test.Request(suite.T(), http.MethodPatch, household.Data.Links.Self, map[string]string{
		"name": "Familie Muster-Meier",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.HouseholdResponse
	test.DecodeResponse(suite.T(), &r, &res)
	assert.Equal(suite.T(), "Familie Muster-Meier", res.Data.Name)
}

func (suite *TestSuiteStandard) TestHouseholdDelete() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})

	r := test.Request(suite.T(), http.MethodDelete, household.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, household.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
