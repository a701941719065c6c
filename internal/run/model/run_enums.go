package model

type RunStatus string

const (
	RunInTransit RunStatus = "IN_TRANSIT"
	RunCompleted RunStatus = "COMPLETED"
	RunFailed    RunStatus = "FAILED"
	RunCancelled RunStatus = "CANCELLED"
)

// IsTerminal reports whether the status ends a run's lifecycle.
// IN_TRANSIT is the only non-terminal state.
func (s RunStatus) IsTerminal() bool {
	return s == RunCompleted || s == RunFailed || s == RunCancelled
}

type EquipmentCategory string

const (
	EquipmentBicycle    EquipmentCategory = "BICYCLE"
	EquipmentMotorcycle EquipmentCategory = "MOTORCYCLE"
	EquipmentVan        EquipmentCategory = "VAN"
	EquipmentTruck      EquipmentCategory = "TRUCK"
)

type NotificationType string

const (
	NotifyRunCompleted NotificationType = "RUN_COMPLETED"
	NotifyRunFailed    NotificationType = "RUN_FAILED"
	NotifyRunConflict  NotificationType = "RUN_CONFLICT"
)
