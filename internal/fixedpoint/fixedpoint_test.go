package fixedpoint

import "testing"

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{"one times one", Scale, Scale, Scale},
		{"half times two", Scale / 2, 2 * Scale, Scale},
		{"negative", -Scale, Scale, -Scale},
		{"zero", 0, Scale, 0},
		{"large magnitude no overflow", 2_000_000, 3 * Scale, 6_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mul(tt.a, tt.b); got != tt.want {
				t.Errorf("Mul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiv(t *testing.T) {
	got, err := Div(Scale, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Scale is 1.0 and 2 is 0.002 in fixed point, so the quotient is 500.0.
	if got != 500*Scale {
		t.Errorf("Div(Scale, 2) = %d, want %d", got, 500*Scale)
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(Scale, 0); err == nil {
		t.Fatal("expected error dividing by zero")
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		n    int32
		want int32
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{4, 2},
		{1000000, 1000},
		{2, 1},
	}

	for _, tt := range tests {
		if got := Sqrt(tt.n); got != tt.want {
			t.Errorf("Sqrt(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestSqrtMonotonic(t *testing.T) {
	prev := int32(0)
	for n := int32(0); n < 100000; n += 37 {
		got := Sqrt(n)
		if got < prev {
			t.Fatalf("Sqrt not monotonic at n=%d: got %d after %d", n, got, prev)
		}
		prev = got
	}
}

func TestAbsMinMax(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Fatal("Abs incorrect")
	}
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Fatal("Min incorrect")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Fatal("Max incorrect")
	}
}

func TestClampSign(t *testing.T) {
	if Clamp(5, 0, 10) != 5 || Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 {
		t.Fatal("Clamp incorrect")
	}
	if Sign(5) != 1 || Sign(-5) != -1 || Sign(0) != 0 {
		t.Fatal("Sign incorrect")
	}
}
