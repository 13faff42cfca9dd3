package models

// SyncState is the per-note sync state.
//
//	neverSynced -> pendingUpload -> synced
//	synced      -> pendingUpload   (local edit)
//	synced      -> pendingDownload (remote change notification, cleared by the next pass)
//
// conflict is never terminal: conflicts are resolved inside the merge pass.
type SyncState string

const (
	SyncStateNeverSynced     SyncState = "neverSynced"
	SyncStatePendingUpload   SyncState = "pendingUpload"
	SyncStatePendingDownload SyncState = "pendingDownload"
	SyncStateSynced          SyncState = "synced"
	SyncStateConflict        SyncState = "conflict"
)

// Valid reports whether s is a known state.
func (s SyncState) Valid() bool {
	switch s {
	case SyncStateNeverSynced, SyncStatePendingUpload, SyncStatePendingDownload,
		SyncStateSynced, SyncStateConflict:
		return true
	default:
		return false
	}
}

// AccountStatus is the availability of the remote account.
// Every sync operation requires AccountStatusAvailable.
type AccountStatus string

const (
	AccountStatusAvailable              AccountStatus = "available"
	AccountStatusNoAccount              AccountStatus = "noAccount"
	AccountStatusRestricted             AccountStatus = "restricted"
	AccountStatusUnknown                AccountStatus = "unknown"
	AccountStatusTemporarilyUnavailable AccountStatus = "temporarilyUnavailable"
)

// AccountStatusResponse is the body of GET /api/account/status.
type AccountStatusResponse struct {
	Status AccountStatus `json:"status"`
}

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusAvailable, AccountStatusNoAccount, AccountStatusRestricted,
		AccountStatusUnknown, AccountStatusTemporarilyUnavailable:
		return true
	default:
		return false
	}
}
