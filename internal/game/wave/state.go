package wave

import "github.com/zeusync/wavecore/internal/game/difficulty"

type StateKind uint8

const (
	SpawningRound StateKind = iota
	WaitingForRoundClear
	RoundBreak
	WaitingForWaveClear
	WaveBreak
)

func (k StateKind) String() string {
	switch k {
	case SpawningRound:
		return "SPAWNING_ROUND"
	case WaitingForRoundClear:
		return "WAITING_FOR_ROUND_CLEAR"
	case RoundBreak:
		return "ROUND_BREAK"
	case WaitingForWaveClear:
		return "WAITING_FOR_WAVE_CLEAR"
	case WaveBreak:
		return "WAVE_BREAK"
	default:
		return "UNKNOWN"
	}
}

// state is a closed union; each variant carries only the data valid in it.
type state interface {
	kind() StateKind
}

type spawningRound struct {
	cfg            difficulty.RoundConfig
	timer          float64
	batchesSpawned int
}

type waitingForRoundClear struct {
	expected int
}

// Breaks only accumulate elapsed time; leaving them is triggered externally.
type roundBreak struct {
	elapsed float64
}

type waitingForWaveClear struct{}

type waveBreak struct {
	elapsed float64
}

func (*spawningRound) kind() StateKind        { return SpawningRound }
func (*waitingForRoundClear) kind() StateKind { return WaitingForRoundClear }
func (*roundBreak) kind() StateKind           { return RoundBreak }
func (*waitingForWaveClear) kind() StateKind  { return WaitingForWaveClear }
func (*waveBreak) kind() StateKind            { return WaveBreak }
