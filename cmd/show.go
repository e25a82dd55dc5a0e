package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	showMeasure int
	showSection int
	showFormat  string
)

func init() {
	showCmd.Flags().IntVar(&showMeasure, "measure", 0, "Only show this measure")
	showCmd.Flags().IntVar(&showSection, "section", 0, "Only show this section")
	showCmd.Flags().StringVar(&showFormat, "format", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Prints an assembled lead sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := file.LoadSong(args[0])
		if err != nil {
			return err
		}
		return renderSong(cmd.OutOrStdout(), song, showMeasure, showSection, showFormat)
	},
}

type chordView struct {
	Name         string   `json:"name" yaml:"name"`
	Beat         float64  `json:"beat" yaml:"beat"`
	Notes        []string `json:"notes" yaml:"notes,flow"`
	PitchClasses []int    `json:"pitch_classes" yaml:"pitch_classes,flow"`
}

type measureView struct {
	Number int         `json:"number" yaml:"number"`
	Chords []chordView `json:"chords" yaml:"chords"`
}

type sectionView struct {
	Number   int           `json:"number" yaml:"number"`
	Measures []measureView `json:"measures" yaml:"measures"`
}

type songView struct {
	TimeSignature string        `json:"time_signature" yaml:"time_signature"`
	Key           string        `json:"key" yaml:"key"`
	TotalMeasures int           `json:"total_measures" yaml:"total_measures"`
	Sections      []sectionView `json:"sections" yaml:"sections"`
}

func newChordView(c chord.Chord) chordView {
	v := chordView{Name: c.Name, Beat: c.Beat, Notes: c.NoteNames()}
	for _, n := range c.Notes {
		v.PitchClasses = append(v.PitchClasses, int(n))
	}
	return v
}

func newMeasureView(m leadsheet.Measure) measureView {
	v := measureView{Number: m.Number, Chords: []chordView{}}
	for _, c := range m.Chords {
		v.Chords = append(v.Chords, newChordView(c))
	}
	return v
}

func newSectionView(s leadsheet.Section) sectionView {
	v := sectionView{Number: s.Number, Measures: []measureView{}}
	for _, m := range s.Measures {
		v.Measures = append(v.Measures, newMeasureView(m))
	}
	return v
}

func newSongView(s *leadsheet.Song) songView {
	v := songView{
		TimeSignature: s.TimeSignature.String(),
		Key:           s.Key.Name,
		TotalMeasures: s.TotalMeasures,
		Sections:      []sectionView{},
	}
	for _, section := range s.Sections {
		v.Sections = append(v.Sections, newSectionView(section))
	}
	return v
}

func encode(w io.Writer, format string, view any, text string) error {
	switch format {
	case "", "text":
		_, err := io.WriteString(w, text)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(view)
	default:
		return fmt.Errorf("unknown format %q, expected text, json or yaml", format)
	}
}

func renderSong(w io.Writer, song *leadsheet.Song, measure, section int, format string) error {
	switch {
	case measure != 0 && section != 0:
		return fmt.Errorf("--measure and --section cannot be combined")
	case measure != 0:
		m, err := song.GetMeasure(measure)
		if err != nil {
			return err
		}
		return encode(w, format, newMeasureView(m), m.String())
	case section != 0:
		s, err := song.GetSection(section)
		if err != nil {
			return err
		}
		return encode(w, format, newSectionView(s), s.String())
	default:
		return encode(w, format, newSongView(song), song.String())
	}
}
