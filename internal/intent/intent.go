// Package intent classifies a windowed motion sample stream into one of
// five intent classes and packs the result into a fixed 8-byte wire
// record.
package intent

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// Class is one of the five recognized motion-intent classes.
type Class uint8

const (
	Idle Class = iota
	Grasp
	Release
	Traverse
	Reach
)

func (c Class) String() string {
	switch c {
	case Idle:
		return "idle"
	case Grasp:
		return "grasp"
	case Release:
		return "release"
	case Traverse:
		return "traverse"
	case Reach:
		return "reach"
	default:
		return "unknown"
	}
}

// RecordSize is the fixed size of a packed intent record, in bytes.
const RecordSize = 8

// bytesPerSample is the assumed uncompressed size of one input sample
// (8-byte timestamp + 24-byte position vector), used to report
// compression_ratio.
const bytesPerSample = 32

const (
	idleSpeedThreshold  = 0.01 // m/s
	idlePathThreshold   = 0.005
	pathRatioLow        = 0.3
	pathRatioHigh       = 0.7
	terminalSpeedFactor = 0.1
	directionScale      = 127.0
	minDirectionNorm    = 1e-9
)

// Sample is one point of a motion sample window.
type Sample struct {
	TimestampUs int64
	Position    vecmath.Vector3
	Velocity    *vecmath.Vector3 // nil means derive speed from finite differences
}

// Request is the input to Compress.
type Request struct {
	Samples      []Sample
	SampleRateHz float64
}

// Result is the output of Compress.
type Result struct {
	IntentID         string
	IntentType       Class
	Direction        vecmath.Vector3
	Magnitude        float64
	CompressedBytes  int
	OriginalSamples  int
	CompressionRatio float64
	ElapsedUs        int64
	Packed           [RecordSize]byte
}

// Compress classifies the sample window and packs the result into an
// 8-byte record.
func Compress(req Request) (Result, error) {
	start := time.Now()

	if len(req.Samples) == 0 {
		return Result{}, fmt.Errorf("samples must not be empty")
	}
	if req.SampleRateHz <= 0 {
		return Result{}, fmt.Errorf("sample_rate_hz must be positive")
	}
	for i := 1; i < len(req.Samples); i++ {
		if req.Samples[i].TimestampUs < req.Samples[i-1].TimestampUs {
			return Result{}, fmt.Errorf("sample timestamps must be non-decreasing, sample %d out of order", i)
		}
	}

	displacement := req.Samples[len(req.Samples)-1].Position.Sub(req.Samples[0].Position)
	magnitude := displacement.Norm()

	pathLength, meanSpeed, terminalSpeed, peakSpeed := sampleStatistics(req.Samples)

	class := classify(magnitude, pathLength, meanSpeed, terminalSpeed, peakSpeed)

	direction := vecmath.Zero3
	if magnitude >= minDirectionNorm {
		direction = displacement.Scale(1 / magnitude)
	}

	packed := pack(class, direction, magnitude)

	return Result{
		IntentID:         uuid.New().String(),
		IntentType:       class,
		Direction:        direction,
		Magnitude:        magnitude,
		CompressedBytes:  RecordSize,
		OriginalSamples:  len(req.Samples),
		CompressionRatio: float64(len(req.Samples)*bytesPerSample) / float64(RecordSize),
		ElapsedUs:        time.Since(start).Microseconds(),
		Packed:           packed,
	}, nil
}

// sampleStatistics returns path length, mean speed, terminal (last-sample)
// speed, and peak speed over the window. Speed is taken from Velocity when
// present, otherwise finite-differenced from position and timestamp.
func sampleStatistics(samples []Sample) (pathLength, meanSpeed, terminalSpeed, peakSpeed float64) {
	speeds := make([]float64, len(samples))
	for i := range samples {
		if samples[i].Velocity != nil {
			speeds[i] = samples[i].Velocity.Norm()
			continue
		}
		if i == 0 {
			speeds[i] = 0
			continue
		}
		dt := float64(samples[i].TimestampUs-samples[i-1].TimestampUs) / 1e6
		if dt <= 0 {
			speeds[i] = 0
			continue
		}
		speeds[i] = samples[i].Position.Sub(samples[i-1].Position).Norm() / dt
	}

	var sumSpeed float64
	for i, s := range samples {
		sumSpeed += speeds[i]
		if i > 0 {
			pathLength += s.Position.Sub(samples[i-1].Position).Norm()
		}
		if speeds[i] > peakSpeed {
			peakSpeed = speeds[i]
		}
	}
	meanSpeed = sumSpeed / float64(len(samples))
	terminalSpeed = speeds[len(speeds)-1]
	return
}

func classify(magnitude, pathLength, meanSpeed, terminalSpeed, peakSpeed float64) Class {
	if meanSpeed < idleSpeedThreshold && pathLength < idlePathThreshold {
		return Idle
	}

	ratio := 1.0
	if pathLength > minDirectionNorm {
		ratio = magnitude / pathLength
	}

	if ratio < pathRatioLow {
		if terminalSpeed < terminalSpeedFactor*peakSpeed {
			return Grasp
		}
		return Release
	}
	if ratio >= pathRatioHigh {
		return Reach
	}
	return Traverse
}

// pack encodes class, direction, and magnitude into the 8-byte wire format:
// byte 0 class tag, bytes 1-3 signed int8 direction components (scale 127),
// bytes 4-7 little-endian float32 magnitude.
func pack(class Class, direction vecmath.Vector3, magnitude float64) [RecordSize]byte {
	var out [RecordSize]byte
	out[0] = byte(class)
	out[1] = quantizeAxis(direction.X)
	out[2] = quantizeAxis(direction.Y)
	out[3] = quantizeAxis(direction.Z)
	binary.LittleEndian.PutUint32(out[4:8], math.Float32bits(float32(magnitude)))
	return out
}

func quantizeAxis(v float64) byte {
	scaled := math.Round(v * directionScale)
	if scaled > 127 {
		scaled = 127
	}
	if scaled < -127 {
		scaled = -127
	}
	return byte(int8(scaled))
}

// Decode is the exact inverse of pack: it reconstructs class, direction,
// and magnitude from an 8-byte wire record.
func Decode(record [RecordSize]byte) (Class, vecmath.Vector3, float64, error) {
	class := Class(record[0])
	if class > Reach {
		return 0, vecmath.Zero3, 0, fmt.Errorf("invalid class tag %d", record[0])
	}
	direction := vecmath.Vector3{
		X: float64(int8(record[1])) / directionScale,
		Y: float64(int8(record[2])) / directionScale,
		Z: float64(int8(record[3])) / directionScale,
	}
	magnitude := float64(math.Float32frombits(binary.LittleEndian.Uint32(record[4:8])))
	return class, direction, magnitude, nil
}
