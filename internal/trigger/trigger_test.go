package trigger

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindTimer, "Timer"},
		{KindWaitWriteOnly, "WaitWriteOnly"},
		{KindWaitCombRead, "WaitCombRead"},
		{KindWaitCombStable, "WaitCombStable"},
		{KindWaitTimeslotEnd, "WaitTimeslotEnd"},
		{KindEvent, "Event"},
		{KindStop, "StopSimulation"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestTriggerKinds(t *testing.T) {
	var cases = []struct {
		trig Trigger
		want Kind
	}{
		{Timer{Delay: 5}, KindTimer},
		{WaitWriteOnly{}, KindWaitWriteOnly},
		{WaitCombRead{}, KindWaitCombRead},
		{WaitCombStable{}, KindWaitCombStable},
		{WaitTimeslotEnd{}, KindWaitTimeslotEnd},
		{Stop{Reason: "done"}, KindStop},
	}
	for _, c := range cases {
		if got := c.trig.Kind(); got != c.want {
			t.Errorf("%#v.Kind() = %v, want %v", c.trig, got, c.want)
		}
	}
}

func TestStopCarriesReason(t *testing.T) {
	s := Stop{Reason: "until bound reached"}
	if s.Reason != "until bound reached" {
		t.Errorf("Stop.Reason = %q", s.Reason)
	}
}
