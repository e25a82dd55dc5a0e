package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/leadsheet"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const Resolution = smf.MetricTicks(960)

const (
	bassOctave  = 48
	chordOctave = 60
	channel     = 0
	velocity    = 100
)

// BeatTicks is the length of one beat of ts in ticks.
func BeatTicks(ts leadsheet.TimeSignature) uint32 {
	return uint32(Resolution) * 4 / uint32(ts.Unit)
}

// Voicing places the first note (the bass, or the root when there is none) an octave
// below the rest. Repeated keys are dropped.
func Voicing(c chord.Chord) []uint8 {
	var keys []uint8
	seen := make(map[uint8]bool)
	for i, n := range c.Notes {
		key := uint8(chordOctave + int(n))
		if i == 0 {
			key = uint8(bassOctave + int(n))
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

type trackWriter struct {
	track smf.Track
	last  uint32
}

func (w *trackWriter) at(abs uint32, msgs ...[]byte) {
	if len(msgs) == 0 {
		return
	}
	w.track.Add(abs-w.last, msgs...)
	w.last = abs
}

func noteOffs(keys []uint8) [][]byte {
	var res [][]byte
	for _, k := range keys {
		res = append(res, midi.NoteOff(channel, k))
	}
	return res
}

func noteOns(keys []uint8) [][]byte {
	var res [][]byte
	for _, k := range keys {
		res = append(res, midi.NoteOn(channel, k, velocity))
	}
	return res
}

// SongToSMF renders every chord of song as a block chord held until the next one. bpm
// counts beats of the time signature's unit. Measures are laid out back to back in song
// order, so an excerpt starts at tick 0 whatever its measure numbers are.
func SongToSMF(song *leadsheet.Song, bpm float64) (*smf.SMF, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("invalid tempo %v", bpm)
	}
	ts := song.TimeSignature
	// SMF meters store the denominator as a power of two
	if ts.Beats < 1 || ts.Beats > 255 || ts.Unit < 1 || ts.Unit > 64 || ts.Unit&(ts.Unit-1) != 0 {
		return nil, fmt.Errorf("time signature %s cannot be written to midi", ts)
	}

	beatTicks := BeatTicks(ts)
	measureTicks := beatTicks * uint32(ts.Beats)

	w := &trackWriter{}
	w.at(0,
		smf.MetaTrackSequenceName(fmt.Sprintf("%s in %s", ts, song.Key.Name)),
		smf.MetaMeter(uint8(ts.Beats), uint8(ts.Unit)),
		smf.MetaTempo(bpm*4/float64(ts.Unit)),
	)

	var sounding []uint8
	var index uint32
	for _, section := range song.Sections {
		for i, m := range section.Measures {
			start := index * measureTicks
			if i == 0 {
				w.at(start, smf.MetaMarker(fmt.Sprintf("Section %d", section.Number)))
			}
			for _, c := range m.Chords {
				abs := start + uint32(c.Beat*float64(beatTicks))
				keys := Voicing(c)
				w.at(abs, append(noteOffs(sounding), noteOns(keys)...)...)
				sounding = keys
			}
			index++
		}
	}
	w.at(index*measureTicks, noteOffs(sounding)...)
	w.track.Close(0)

	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(w.track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

func WriteSong(out io.Writer, song *leadsheet.Song, bpm float64) error {
	s, err := SongToSMF(song, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(out); err != nil {
		return fmt.Errorf("could not write midi: %w", err)
	}
	return nil
}

type NoteStart struct {
	Track int
	Tick  uint64
	Key   uint8
}

// NoteStarts lists every note-on with a non-zero velocity, with absolute ticks.
func NoteStarts(s *smf.SMF) []NoteStart {
	var res []NoteStart
	for i, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				res = append(res, NoteStart{Track: i, Tick: abs, Key: key})
			}
		}
	}
	return res
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading midi: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi: %w", err)
	}
	return res, nil
}
