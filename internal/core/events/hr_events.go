package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAccountProvisioned = "account.provisioned"
	EventTypeEmployeesImported  = "employees.imported"
)

type AccountProvisionedEvent struct {
	BaseEvent
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
}

func NewAccountProvisionedEvent(accountID int64, email string) *AccountProvisionedEvent {
	return &AccountProvisionedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountProvisioned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"account_id": accountID,
				"email":      email,
			},
		},
		AccountID: accountID,
		Email:     email,
	}
}

type EmployeesImportedEvent struct {
	BaseEvent
	BatchID         string `json:"batch_id"`
	Imported        int    `json:"imported"`
	Failed          int    `json:"failed"`
	AccountsCreated int    `json:"accounts_created"`
}

func NewEmployeesImportedEvent(batchID string, imported, failed, accountsCreated int) *EmployeesImportedEvent {
	return &EmployeesImportedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeesImported,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"batch_id":         batchID,
				"imported":         imported,
				"failed":           failed,
				"accounts_created": accountsCreated,
			},
		},
		BatchID:         batchID,
		Imported:        imported,
		Failed:          failed,
		AccountsCreated: accountsCreated,
	}
}
