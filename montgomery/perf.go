package montgomery

import "github.com/klauspost/cpuid/v2"

// Tag names a Performance Tag preference. A Form records the tag it was
// constructed with and reports it through Form.Tag; the arithmetic itself
// runs the same REDC code path for both tags, so results and instruction
// sequences do not depend on the tag.
type Tag int

const (
	// LowLatency is the tag chosen for hosts without ADX/BMI2 support.
	LowLatency Tag = iota
	// LowUops is the tag chosen for hosts with ADX/BMI2 support.
	LowUops
)

func (t Tag) String() string {
	if t == LowUops {
		return "LowUops"
	}
	return "LowLatency"
}

// DefaultTag inspects the running CPU for ADX and BMI2 support and picks
// LowUops when both are present, LowLatency otherwise. This is the only
// place this module makes a host-capability-dependent choice; it only
// decides which tag a Form records, never which REDC code path runs.
func DefaultTag() Tag {
	if cpuid.CPU.Supports(cpuid.ADX, cpuid.BMI2) {
		return LowUops
	}
	return LowLatency
}
