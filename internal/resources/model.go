package resources

import (
	"fmt"

	"pos-terminal/internal/api"
	"pos-terminal/internal/metering"
)

type Kind string

const (
	KindDevice Kind = "device"
	KindTable  Kind = "table"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
)

// Card is the terminal's read-mostly mirror of one billable resource. The
// authoritative record lives server-side and arrives via the poller.
type Card struct {
	ResourceID  string
	Kind        Kind
	Name        string
	Status      Status
	RatePerHour float64
	Session     *metering.Session
}

// CardFromDevice maps a polled PlayStation device onto a resource card.
func CardFromDevice(d api.Device) Card {
	card := Card{
		ResourceID:  d.ID,
		Kind:        KindDevice,
		Name:        d.Name,
		Status:      StatusAvailable,
		RatePerHour: d.PricePerHour,
	}
	if d.Status == api.DeviceOccupied {
		card.Status = StatusOccupied
	}
	if d.CurrentSession != nil {
		rate := d.CurrentSession.PricePerHourSnapshot
		if rate == 0 {
			rate = d.PricePerHour
		}
		card.Session = &metering.Session{
			ID:          d.CurrentSession.ID,
			ResourceID:  d.ID,
			StartTime:   d.CurrentSession.StartTime,
			RatePerHour: rate,
			Status:      metering.StatusActive,
		}
		if d.Status != api.DeviceOccupied {
			card.Session.Status = metering.StatusEnded
		}
	}
	return card
}

// CardFromTable maps a polled dining table onto a resource card. Tables are
// not time-metered, so they never carry a session.
func CardFromTable(t api.Table) Card {
	status := StatusAvailable
	if t.Status == api.TableBooked {
		status = StatusOccupied
	}
	return Card{
		ResourceID: t.ID,
		Kind:       KindTable,
		Name:       tableName(t),
		Status:     status,
	}
}

func tableName(t api.Table) string {
	if t.TableNo > 0 {
		return fmt.Sprintf("Table %d", t.TableNo)
	}
	return t.ID
}
