package geometry

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestRotationDegrees(t *testing.T) {
	origin := Point2D{}

	tests := []struct {
		name   string
		middle Point2D
		want   float64
	}{
		{name: "east", middle: Point2D{X: 1, Y: 0}, want: 0},
		{name: "south", middle: Point2D{X: 0, Y: 1}, want: 90},
		{name: "west", middle: Point2D{X: -1, Y: 0}, want: 180},
		{name: "north", middle: Point2D{X: 0, Y: -1}, want: 270},
		{name: "southeast", middle: Point2D{X: 1, Y: 1}, want: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotationDegrees(origin, tt.middle); math.Abs(got-tt.want) > epsilon {
				t.Errorf("RotationDegrees() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRotationDegrees_AlwaysNormalized(t *testing.T) {
	wrist := Point2D{X: 320, Y: 240}
	for deg := 0; deg < 360; deg += 15 {
		rad := float64(deg) * math.Pi / 180
		middle := Point2D{
			X: wrist.X + 100*math.Cos(rad),
			Y: wrist.Y + 100*math.Sin(rad),
		}
		got := RotationDegrees(wrist, middle)
		if got < 0 || got >= 360 {
			t.Errorf("RotationDegrees() = %f at %d°, want value in [0, 360)", got, deg)
		}
		if math.Abs(got-float64(deg)) > 1e-6 {
			t.Errorf("RotationDegrees() = %f, want %d", got, deg)
		}
	}
}

func TestPalmAnchor(t *testing.T) {
	hand := detector.HandLandmarks{}
	hand.Points[detector.Wrist] = detector.Point3D{X: 0.5, Y: 0.8}
	hand.Points[detector.MiddleMCP] = detector.Point3D{X: 0.5, Y: 0.6}

	anchor := PalmAnchor(&hand, 1280, 720)

	if math.Abs(anchor.X-640) > epsilon {
		t.Errorf("anchor.X = %f, want 640", anchor.X)
	}
	if math.Abs(anchor.Y-504) > epsilon {
		t.Errorf("anchor.Y = %f, want 504", anchor.Y)
	}
}

func TestOpenness(t *testing.T) {
	const width, height = 1280, 720

	t.Run("fingertips on anchor read closed", func(t *testing.T) {
		hand := detector.HandLandmarks{}
		anchor := Point2D{X: 640, Y: 360}
		for _, idx := range detector.FingertipIndices {
			hand.Points[idx] = detector.Point3D{X: 0.5, Y: 0.5}
		}

		if got := Openness(&hand, anchor, width, height); got != 0 {
			t.Errorf("Openness() = %f, want 0", got)
		}
	})

	t.Run("fingertips past open reference read fully open", func(t *testing.T) {
		hand := detector.HandLandmarks{}
		anchor := Point2D{X: 0, Y: 0}
		// Every tip far beyond the open reference distance.
		for _, idx := range detector.FingertipIndices {
			hand.Points[idx] = detector.Point3D{X: 0.9, Y: 0.9}
		}

		if got := Openness(&hand, anchor, width, height); got != 100 {
			t.Errorf("Openness() = %f, want 100", got)
		}
	})

	t.Run("output clipped for extreme coordinates", func(t *testing.T) {
		hand := detector.HandLandmarks{}
		anchor := Point2D{X: 640, Y: 360}
		for _, idx := range detector.FingertipIndices {
			hand.Points[idx] = detector.Point3D{X: -50, Y: 80}
		}

		got := Openness(&hand, anchor, width, height)
		if got < 0 || got > 100 {
			t.Errorf("Openness() = %f, want value in [0, 100]", got)
		}
	})

	t.Run("open palm fixture reads mostly open", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()
		anchor := PalmAnchor(&hand, width, height)

		if got := Openness(&hand, anchor, width, height); got < 60 {
			t.Errorf("Openness(open palm) = %f, want >= 60", got)
		}
	})

	t.Run("fist fixture reads mostly closed", func(t *testing.T) {
		hand := detector.FistLandmarks()
		anchor := PalmAnchor(&hand, width, height)

		if got := Openness(&hand, anchor, width, height); got > 40 {
			t.Errorf("Openness(fist) = %f, want <= 40", got)
		}
	})

	t.Run("degenerate range yields zero", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()
		anchor := PalmAnchor(&hand, width, height)

		if got := OpennessWithRange(&hand, anchor, width, height, 0.4, 0.4); got != 0 {
			t.Errorf("OpennessWithRange() = %f, want 0 for empty range", got)
		}
	})
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b detector.Point3D
		want float64
	}{
		{
			name: "parallel",
			a:    detector.Point3D{X: 1},
			b:    detector.Point3D{X: 2},
			want: 0,
		},
		{
			name: "perpendicular",
			a:    detector.Point3D{X: 1},
			b:    detector.Point3D{Y: 1},
			want: math.Pi / 2,
		},
		{
			name: "opposite",
			a:    detector.Point3D{X: 1},
			b:    detector.Point3D{X: -1},
			want: math.Pi,
		},
		{
			name: "zero vector",
			a:    detector.Point3D{},
			b:    detector.Point3D{X: 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("AngleBetween() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAngleBetween_ClampsFloatOvershoot(t *testing.T) {
	// Nearly identical vectors whose normalized dot product can land a hair
	// above 1.0.
	a := detector.Point3D{X: 0.1 + 0.2, Y: 0.3, Z: 0.7}
	b := detector.Point3D{X: 0.3, Y: 0.1 + 0.2, Z: 0.7}

	got := AngleBetween(a, b)
	if math.IsNaN(got) {
		t.Fatal("AngleBetween() returned NaN")
	}
	if got < 0 || got > math.Pi {
		t.Errorf("AngleBetween() = %f, want value in [0, π]", got)
	}
}
