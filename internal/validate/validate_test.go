package validate

import (
	"math"
	"testing"
)

func fieldsOf(errs []FieldError) map[string]bool {
	m := make(map[string]bool, len(errs))
	for _, e := range errs {
		m[e.Field] = true
	}
	return m
}

func TestSensor_Valid(t *testing.T) {
	t.Parallel()

	if errs := Sensor("Lab Sensor", "temperature", "Room 101", ""); len(errs) != 0 {
		t.Fatalf("unexpected violations: %+v", errs)
	}
	if errs := Sensor("AB", "gas", "Basement", "maintenance"); len(errs) != 0 {
		t.Fatalf("unexpected violations: %+v", errs)
	}
}

func TestSensor_NameLength(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "x"} {
		errs := Sensor(name, "temperature", "Room 101", "")
		if !fieldsOf(errs)["name"] {
			t.Fatalf("name %q: expected a name violation, got %+v", name, errs)
		}
	}
}

func TestSensor_ClosedEnums(t *testing.T) {
	t.Parallel()

	errs := Sensor("Lab Sensor", "sound", "Room 101", "broken")
	fields := fieldsOf(errs)
	if !fields["type"] {
		t.Fatalf("expected a type violation, got %+v", errs)
	}
	if !fields["status"] {
		t.Fatalf("expected a status violation, got %+v", errs)
	}
}

func TestSensor_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	errs := Sensor("", "bogus", "", "")
	if len(errs) != 3 {
		t.Fatalf("expected 3 violations (name, type, location), got %d: %+v", len(errs), errs)
	}
}

func TestReading_ValueRequired(t *testing.T) {
	t.Parallel()

	errs := Reading(nil, "°C", 1)
	if !fieldsOf(errs)["value"] {
		t.Fatalf("expected a value violation, got %+v", errs)
	}
}

func TestReading_NonFiniteValue(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v := v
		errs := Reading(&v, "°C", 1)
		if !fieldsOf(errs)["value"] {
			t.Fatalf("value %v: expected a violation, got %+v", v, errs)
		}
	}
}

func TestReading_Valid(t *testing.T) {
	t.Parallel()

	v := 23.5
	if errs := Reading(&v, "°C", 7); len(errs) != 0 {
		t.Fatalf("unexpected violations: %+v", errs)
	}
}

func TestReading_UnitAndSensor(t *testing.T) {
	t.Parallel()

	v := 1.0
	errs := Reading(&v, "", 0)
	fields := fieldsOf(errs)
	if !fields["unit"] || !fields["sensorId"] {
		t.Fatalf("expected unit and sensorId violations, got %+v", errs)
	}
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	if errs := Registration("Alice", "alice@example.com", "secret1"); len(errs) != 0 {
		t.Fatalf("unexpected violations: %+v", errs)
	}

	errs := Registration("A", "not-an-email", "short")
	fields := fieldsOf(errs)
	for _, f := range []string{"name", "email", "password"} {
		if !fields[f] {
			t.Fatalf("expected a %s violation, got %+v", f, errs)
		}
	}
}
