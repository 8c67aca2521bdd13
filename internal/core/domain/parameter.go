package domain

import "time"

// Well-known parameter names.
const (
	ParamSystemDate       = "System_Date"
	ParamLastEODDate      = "Last_EOD_Date"
	ParamLastEODTimestamp = "Last_EOD_Timestamp"
	ParamLastEODUser      = "Last_EOD_User"
)

// Parameter is one row of the key/value parameter table. System_Date is the
// single source of truth for the open business day.
type Parameter struct {
	Name        string    `json:"parameterName"`
	Value       string    `json:"parameterValue"`
	UpdatedBy   string    `json:"updatedBy"`
	LastUpdated time.Time `json:"lastUpdated"`
}
