package domain

// Intensity is the severity of an entry.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func (i Intensity) String() string { return string(i) }

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// Label returns the display name of the intensity.
func (i Intensity) Label() string {
	switch i {
	case IntensityLow:
		return "Low"
	case IntensityMedium:
		return "Medium"
	case IntensityHigh:
		return "High"
	}
	return string(i)
}

// Intensities lists every valid intensity in ascending severity.
func Intensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh}
}

// Status describes how an entry is currently being handled.
type Status string

const (
	StatusReturn  Status = "return_pudi"
	StatusKawa    Status = "kawa_pudi"
	StatusAsarana Status = "asarana_pudi"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusReturn, StatusKawa, StatusAsarana:
		return true
	}
	return false
}

// Label returns the display name of the status.
func (s Status) Label() string {
	switch s {
	case StatusReturn:
		return "Return Pudi"
	case StatusKawa:
		return "Kawa Pudi"
	case StatusAsarana:
		return "Asarana Pudi"
	}
	return string(s)
}

// Statuses lists every valid status.
func Statuses() []Status {
	return []Status{StatusReturn, StatusKawa, StatusAsarana}
}
