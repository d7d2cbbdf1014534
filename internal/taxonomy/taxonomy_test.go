package taxonomy

import (
	"net/http"
	"testing"
)

func TestLookupKnownCodes(t *testing.T) {
	testCases := []struct {
		code     Code
		category Category
		status   int
	}{
		{CodeEmailExists, CategoryUser, http.StatusConflict},
		{CodeInvalidCredentials, CategoryUser, http.StatusUnauthorized},
		{CodeForbidden, CategoryUser, http.StatusForbidden},
		{CodeUserNotFound, CategoryUser, http.StatusNotFound},
		{CodeInvalidInvite, CategoryInvite, http.StatusBadRequest},
		{CodeFileTooLarge, CategoryFile, http.StatusBadRequest},
		{CodeQuantityInvalid, CategoryPosition, http.StatusBadRequest},
		{CodePortfolioExists, CategoryPortfolio, http.StatusConflict},
		{CodeBatchFailed, CategoryBatch, http.StatusBadGateway},
		{CodeBatchTimeout, CategoryBatch, http.StatusGatewayTimeout},
		{CodeAlreadyImpersonating, CategoryBatch, http.StatusConflict},
		{CodeNoActiveSession, CategoryBatch, http.StatusNotFound},
	}

	for _, testCase := range testCases {
		entry := Lookup(testCase.code)
		if entry.Category != testCase.category {
			t.Fatalf("%s: expected category %s, got %s", testCase.code, testCase.category, entry.Category)
		}
		if entry.Status != testCase.status {
			t.Fatalf("%s: expected status %d, got %d", testCase.code, testCase.status, entry.Status)
		}
	}
}

func TestLookupUnknownCodeFallsBackToInternal(t *testing.T) {
	entry := Lookup(Code("NoSuchCode"))
	if entry.Code != CodeInternal || entry.Status != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %+v", entry)
	}
}

func TestTableIsClosedAndConsistent(t *testing.T) {
	all := All()
	if len(all) != 38 {
		t.Fatalf("taxonomy must stay closed at 38 public codes, got %d", len(all))
	}

	validStatuses := map[int]bool{
		http.StatusBadRequest:     true,
		http.StatusUnauthorized:   true,
		http.StatusForbidden:      true,
		http.StatusNotFound:       true,
		http.StatusConflict:       true,
		http.StatusBadGateway:     true,
		http.StatusGatewayTimeout: true,
	}
	seen := map[Code]bool{}
	for _, entry := range all {
		if seen[entry.Code] {
			t.Fatalf("duplicate code %s", entry.Code)
		}
		seen[entry.Code] = true
		if !validStatuses[entry.Status] {
			t.Fatalf("%s: status %d outside the allowed classes", entry.Code, entry.Status)
		}
		if entry.Message == "" {
			t.Fatalf("%s: empty message", entry.Code)
		}
	}
}
