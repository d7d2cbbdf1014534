// Package taxonomy holds the closed error vocabulary of the service. Codes
// are stable across releases; every failure that leaves the API boundary is
// translated into exactly one of these entries before serialization.
package taxonomy

import "net/http"

type Category string

const (
	CategoryUser      Category = "user"
	CategoryInvite    Category = "invite_credential"
	CategoryFile      Category = "file"
	CategoryPosition  Category = "position"
	CategoryPortfolio Category = "portfolio"
	CategoryBatch     Category = "batch_admin"
)

type Code string

const (
	// User
	CodeEmailRequired      Code = "EmailRequired"
	CodeEmailInvalid       Code = "EmailInvalid"
	CodeEmailExists        Code = "EmailExists"
	CodePasswordRequired   Code = "PasswordRequired"
	CodeWeakPassword       Code = "WeakPassword"
	CodeFullNameRequired   Code = "FullNameRequired"
	CodeInvalidCredentials Code = "InvalidCredentials"
	CodeTokenMissing       Code = "TokenMissing"
	CodeTokenInvalid       Code = "TokenInvalid"
	CodeTokenExpired       Code = "TokenExpired"
	CodeForbidden          Code = "Forbidden"
	CodeUserNotFound       Code = "UserNotFound"

	// InviteCredential
	CodeInviteRequired Code = "InviteRequired"
	CodeInvalidInvite  Code = "InvalidInvite"

	// File
	CodeFileRequired   Code = "FileRequired"
	CodeFileTooLarge   Code = "FileTooLarge"
	CodeWrongFileType  Code = "WrongFileType"
	CodeEmptyFile      Code = "EmptyFile"
	CodeMissingHeaders Code = "MissingHeaders"

	// Position
	CodeMalformedRow          Code = "MalformedRow"
	CodeSymbolRequired        Code = "SymbolRequired"
	CodeSymbolInvalid         Code = "SymbolInvalid"
	CodeQuantityRequired      Code = "QuantityRequired"
	CodeQuantityInvalid       Code = "QuantityInvalid"
	CodeCostBasisRequired     Code = "CostBasisRequired"
	CodeCostBasisInvalid      Code = "CostBasisInvalid"
	CodeTradeDateRequired     Code = "TradeDateRequired"
	CodeTradeDateInvalid      Code = "TradeDateInvalid"
	CodeEquityBalanceRequired Code = "EquityBalanceRequired"
	CodeEquityBalanceInvalid  Code = "EquityBalanceInvalid"

	// Portfolio
	CodePortfolioExists Code = "PortfolioExists"
	CodePortfolioEmpty  Code = "PortfolioEmpty"

	// Batch / Admin
	CodeBatchFailed          Code = "BatchFailed"
	CodeBatchTimeout         Code = "BatchTimeout"
	CodeTargetNotFound       Code = "TargetNotFound"
	CodeTargetIsSuperuser    Code = "TargetIsSuperuser"
	CodeAlreadyImpersonating Code = "AlreadyImpersonating"
	CodeNoActiveSession      Code = "NoActiveSession"

	// Not part of the public vocabulary but needed as a terminal fallback
	// when a store or collaborator error has no closed-taxonomy meaning.
	CodeInternal Code = "Internal"
)

type Entry struct {
	Code     Code
	Category Category
	Status   int
	Message  string
}

var entries = map[Code]Entry{
	CodeEmailRequired:      {CodeEmailRequired, CategoryUser, http.StatusBadRequest, "email is required"},
	CodeEmailInvalid:       {CodeEmailInvalid, CategoryUser, http.StatusBadRequest, "email address is not valid"},
	CodeEmailExists:        {CodeEmailExists, CategoryUser, http.StatusConflict, "an account with this email already exists"},
	CodePasswordRequired:   {CodePasswordRequired, CategoryUser, http.StatusBadRequest, "password is required"},
	CodeWeakPassword:       {CodeWeakPassword, CategoryUser, http.StatusBadRequest, "password must be at least 8 characters with upper case, lower case and a digit"},
	CodeFullNameRequired:   {CodeFullNameRequired, CategoryUser, http.StatusBadRequest, "full name is required"},
	CodeInvalidCredentials: {CodeInvalidCredentials, CategoryUser, http.StatusUnauthorized, "invalid email or password"},
	CodeTokenMissing:       {CodeTokenMissing, CategoryUser, http.StatusUnauthorized, "authorization token is missing"},
	CodeTokenInvalid:       {CodeTokenInvalid, CategoryUser, http.StatusUnauthorized, "authorization token is invalid"},
	CodeTokenExpired:       {CodeTokenExpired, CategoryUser, http.StatusUnauthorized, "authorization token has expired"},
	CodeForbidden:          {CodeForbidden, CategoryUser, http.StatusForbidden, "superuser access required"},
	CodeUserNotFound:       {CodeUserNotFound, CategoryUser, http.StatusNotFound, "user not found"},

	CodeInviteRequired: {CodeInviteRequired, CategoryInvite, http.StatusBadRequest, "invite code is required"},
	CodeInvalidInvite:  {CodeInvalidInvite, CategoryInvite, http.StatusBadRequest, "invite code is not valid"},

	CodeFileRequired:   {CodeFileRequired, CategoryFile, http.StatusBadRequest, "portfolio file is required"},
	CodeFileTooLarge:   {CodeFileTooLarge, CategoryFile, http.StatusBadRequest, "portfolio file exceeds the size limit"},
	CodeWrongFileType:  {CodeWrongFileType, CategoryFile, http.StatusBadRequest, "portfolio file must be a .csv file"},
	CodeEmptyFile:      {CodeEmptyFile, CategoryFile, http.StatusBadRequest, "portfolio file contains no rows"},
	CodeMissingHeaders: {CodeMissingHeaders, CategoryFile, http.StatusBadRequest, "portfolio file is missing required headers"},

	CodeMalformedRow:          {CodeMalformedRow, CategoryPosition, http.StatusBadRequest, "row does not match the declared columns"},
	CodeSymbolRequired:        {CodeSymbolRequired, CategoryPosition, http.StatusBadRequest, "symbol is required"},
	CodeSymbolInvalid:         {CodeSymbolInvalid, CategoryPosition, http.StatusBadRequest, "symbol format is not valid"},
	CodeQuantityRequired:      {CodeQuantityRequired, CategoryPosition, http.StatusBadRequest, "quantity is required"},
	CodeQuantityInvalid:       {CodeQuantityInvalid, CategoryPosition, http.StatusBadRequest, "quantity must be a non-zero number within range"},
	CodeCostBasisRequired:     {CodeCostBasisRequired, CategoryPosition, http.StatusBadRequest, "cost basis is required"},
	CodeCostBasisInvalid:      {CodeCostBasisInvalid, CategoryPosition, http.StatusBadRequest, "cost basis must be a positive number"},
	CodeTradeDateRequired:     {CodeTradeDateRequired, CategoryPosition, http.StatusBadRequest, "trade date is required"},
	CodeTradeDateInvalid:      {CodeTradeDateInvalid, CategoryPosition, http.StatusBadRequest, "trade date must be formatted YYYY-MM-DD"},
	CodeEquityBalanceRequired: {CodeEquityBalanceRequired, CategoryPosition, http.StatusBadRequest, "equity balance is required"},
	CodeEquityBalanceInvalid:  {CodeEquityBalanceInvalid, CategoryPosition, http.StatusBadRequest, "equity balance must be a non-negative number"},

	CodePortfolioExists: {CodePortfolioExists, CategoryPortfolio, http.StatusConflict, "a portfolio already exists for this user"},
	CodePortfolioEmpty:  {CodePortfolioEmpty, CategoryPortfolio, http.StatusBadRequest, "portfolio has no valid positions"},

	CodeBatchFailed:          {CodeBatchFailed, CategoryBatch, http.StatusBadGateway, "portfolio batch computation failed"},
	CodeBatchTimeout:         {CodeBatchTimeout, CategoryBatch, http.StatusGatewayTimeout, "portfolio batch computation timed out"},
	CodeTargetNotFound:       {CodeTargetNotFound, CategoryBatch, http.StatusNotFound, "impersonation target not found"},
	CodeTargetIsSuperuser:    {CodeTargetIsSuperuser, CategoryBatch, http.StatusConflict, "cannot impersonate a superuser"},
	CodeAlreadyImpersonating: {CodeAlreadyImpersonating, CategoryBatch, http.StatusConflict, "an impersonation session is already active"},
	CodeNoActiveSession:      {CodeNoActiveSession, CategoryBatch, http.StatusNotFound, "no active impersonation session"},

	CodeInternal: {CodeInternal, CategoryUser, http.StatusInternalServerError, "internal error"},
}

// Lookup returns the entry for a code. Unknown codes fall back to the
// internal entry so a missing table row can never leak a raw error.
func Lookup(code Code) Entry {
	if entry, ok := entries[code]; ok {
		return entry
	}
	return entries[CodeInternal]
}

// All returns every public entry; used by tests to hold the table closed.
func All() []Entry {
	all := make([]Entry, 0, len(entries))
	for code, entry := range entries {
		if code == CodeInternal {
			continue
		}
		all = append(all, entry)
	}
	return all
}
