package tui

// dragSensor is the input device that started a drag.
type dragSensor int

const (
	sensorKeyboard dragSensor = iota
	sensorPointer
)

func (s dragSensor) String() string {
	if s == sensorPointer {
		return "pointer"
	}
	return "keyboard"
}

// dropEvent reports the end of a drag: the dragged task and the task it was
// released over. OverID is empty when the drag ended outside any row.
type dropEvent struct {
	ActiveID string
	OverID   string
}

// changesOrder reports whether applying the drop would move anything.
func (e dropEvent) changesOrder() bool {
	return e.ActiveID != "" && e.OverID != "" && e.ActiveID != e.OverID
}

// dragCoordinator tracks one drag gesture at a time: idle until Start, then
// dragging until Drop or Cancel.
type dragCoordinator struct {
	dragging bool
	sensor   dragSensor
	activeID string
	overID   string
}

func (d *dragCoordinator) Active() bool     { return d.dragging }
func (d *dragCoordinator) ActiveID() string { return d.activeID }
func (d *dragCoordinator) OverID() string   { return d.overID }
func (d *dragCoordinator) Sensor() dragSensor {
	return d.sensor
}

// Start begins dragging id. It refuses a second concurrent drag.
func (d *dragCoordinator) Start(id string, sensor dragSensor) bool {
	if d.dragging || id == "" {
		return false
	}
	d.dragging = true
	d.sensor = sensor
	d.activeID = id
	d.overID = id
	return true
}

// Over records the row currently under the dragged task; "" means none.
func (d *dragCoordinator) Over(id string) {
	if !d.dragging {
		return
	}
	d.overID = id
}

// Drop ends the drag and returns the resulting event.
func (d *dragCoordinator) Drop() (dropEvent, bool) {
	if !d.dragging {
		return dropEvent{}, false
	}
	ev := dropEvent{ActiveID: d.activeID, OverID: d.overID}
	d.reset()
	return ev, true
}

// Cancel abandons the drag without producing a drop.
func (d *dragCoordinator) Cancel() {
	d.reset()
}

func (d *dragCoordinator) reset() {
	*d = dragCoordinator{}
}
