package core

import (
	"bytes"
	"testing"

	"pinion/script"
)

func TestBuildTxDataMixed(t *testing.T) {
	data, err := BuildTxData([]script.Value{
		script.Int(65),
		script.Str("BC"),
		script.Array(script.Int(68), script.Int(69)),
	})
	if err != nil {
		t.Fatalf("BuildTxData returned error: %v", err)
	}
	want := []byte{65, 'B', 'C', 68, 69}
	if !bytes.Equal(data, want) {
		t.Errorf("expected % x, got % x", want, data)
	}
}

func TestBuildTxDataShapes(t *testing.T) {
	testCases := []struct {
		name string
		args []script.Value
		want []byte
	}{
		{"single int", []script.Value{script.Int(0)}, []byte{0x00}},
		{"int truncates", []script.Value{script.Int(0x1FF)}, []byte{0xFF}},
		{"negative int wraps", []script.Value{script.Int(-1)}, []byte{0xFF}},
		{"string", []script.Value{script.Str("hi")}, []byte{'h', 'i'}},
		{"array", []script.Value{script.Array(script.Int(1), script.Int(2), script.Int(3))}, []byte{1, 2, 3}},
		{"empty string beside int", []script.Value{script.Str(""), script.Int(7)}, []byte{7}},
		{"empty array beside int", []script.Value{script.Array(), script.Int(9)}, []byte{9}},
	}

	for _, tc := range testCases {
		got, err := BuildTxData(tc.args)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if !bytes.Equal(got, tc.want) {
			t.Errorf("%s: expected % x, got % x", tc.name, tc.want, got)
		}
		if len(got) != len(tc.want) {
			t.Errorf("%s: size mismatch: expected %d, got %d", tc.name, len(tc.want), len(got))
		}
	}
}

func TestBuildTxDataErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []script.Value
	}{
		{"no args", nil},
		{"empty string only", []script.Value{script.Str("")}},
		{"empty array only", []script.Value{script.Array()}},
		{"nil arg", []script.Value{script.Nil()}},
		{"float arg", []script.Value{script.Float(1.5)}},
		{"bool arg", []script.Value{script.Bool(true)}},
		{"array with string", []script.Value{script.Array(script.Int(1), script.Str("x"))}},
		{"array with float", []script.Value{script.Array(script.Float(2.0))}},
		{"good arg then bad", []script.Value{script.Int(1), script.Nil()}},
	}

	for _, tc := range testCases {
		_, err := BuildTxData(tc.args)
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
			continue
		}
		if script.ClassOf(err) != script.ArgumentError {
			t.Errorf("%s: expected ArgumentError, got %v", tc.name, script.ClassOf(err))
		}
		if err.Error() != "ArgumentError: Output parameter error." {
			t.Errorf("%s: unexpected message %q", tc.name, err.Error())
		}
	}
}
