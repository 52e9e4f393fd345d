// internal/catalog/defaults.go
package catalog

import "github.com/tamzrod/statusbank/internal/status"

// Reference power-stage condition IDs.

// Fault bank 0: power. Bank 1: thermal. Bank 2: communication.
var (
	FaultOvercurrent   = status.Encode(0, 0)
	FaultOvervoltage   = status.Encode(0, 1)
	FaultUndervoltage  = status.Encode(0, 2)
	FaultDCBus         = status.Encode(0, 3)
	FaultOverTempAFE   = status.Encode(1, 0)
	FaultOverTempInv   = status.Encode(1, 1)
	FaultCANTimeout    = status.Encode(2, 0)
	FaultModuleMissing = status.Encode(2, 1)
)

// Warning bank 3: power. Bank 4: thermal. Bank 5: communication.
var (
	WarnVoltageFluct  = status.Encode(3, 0)
	WarnCurrentNoise  = status.Encode(3, 1)
	WarnTempNearLimit = status.Encode(4, 0)
	WarnFanPerfDrop   = status.Encode(4, 1)
	WarnCANLoadHigh   = status.Encode(5, 0)
	WarnBroadcastLoss = status.Encode(5, 1)
)

// Info bank 0: power. Bank 1: thermal. Bank 2: communication.
var (
	InfoACLive       = status.Encode(0, 0)
	InfoTempChanging = status.Encode(1, 0)
	InfoCANActive    = status.Encode(2, 0)
)

// DefaultEntries returns the reference table.
func DefaultEntries() []Entry {
	return []Entry{
		{"OVERCURRENT", status.Fault, FaultOvercurrent},
		{"OVERVOLTAGE", status.Fault, FaultOvervoltage},
		{"UNDERVOLTAGE", status.Fault, FaultUndervoltage},
		{"DC_BUS_FAULT", status.Fault, FaultDCBus},
		{"OVER_TEMP_AFE", status.Fault, FaultOverTempAFE},
		{"OVER_TEMP_INV", status.Fault, FaultOverTempInv},
		{"CAN_TIMEOUT", status.Fault, FaultCANTimeout},
		{"MODULE_MISSING", status.Fault, FaultModuleMissing},

		{"VOLTAGE_FLUCT", status.Warning, WarnVoltageFluct},
		{"CURRENT_NOISE", status.Warning, WarnCurrentNoise},
		{"TEMP_NEAR_LIMIT", status.Warning, WarnTempNearLimit},
		{"FAN_PERF_DROP", status.Warning, WarnFanPerfDrop},
		{"CAN_LOAD_HIGH", status.Warning, WarnCANLoadHigh},
		{"BROADCAST_LOSS", status.Warning, WarnBroadcastLoss},

		{"AC_LIVE", status.Info, InfoACLive},
		{"TEMP_CHANGING", status.Info, InfoTempChanging},
		{"CAN_ACTIVE", status.Info, InfoCANActive},
	}
}

// Default returns the reference catalog.
func Default() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic("catalog: default table invalid: " + err.Error())
	}
	return c
}
