package signal

import "testing"

func TestDefinedAndUndefined(t *testing.T) {
	v := Defined(7)
	if !v.Defined || v.Int != 7 {
		t.Errorf("Defined(7) = %+v", v)
	}
	u := Undefined()
	if u.Defined {
		t.Errorf("Undefined() = %+v, want Defined=false", u)
	}
}

func TestValueString(t *testing.T) {
	if got := Defined(3).String(); got != "3" {
		t.Errorf("Defined(3).String() = %q", got)
	}
	if got := Undefined().String(); got != "x" {
		t.Errorf("Undefined().String() = %q", got)
	}
}

func TestAsInt(t *testing.T) {
	v := Defined(42)
	n, err := v.AsInt("data")
	if err != nil || n != 42 {
		t.Fatalf("AsInt() = %d, %v, want 42, nil", n, err)
	}

	_, err = Undefined().AsInt("data")
	if err == nil {
		t.Fatal("expected ErrUndefined for an undefined value")
	}
	if uerr, ok := err.(*ErrUndefined); !ok || uerr.Signal != "data" {
		t.Errorf("err = %v, want *ErrUndefined{Signal: data}", err)
	}
}

func TestMemorySignal(t *testing.T) {
	m := NewMemory("clk")
	if m.Name() != "clk" {
		t.Errorf("Name() = %q", m.Name())
	}
	if m.Read().Defined {
		t.Error("a fresh Memory signal should read as undefined")
	}
	m.Write(Defined(1))
	if got := m.Read(); !got.Defined || got.Int != 1 {
		t.Errorf("Read() after Write(1) = %+v", got)
	}
}
