// Package settings persists viewer preferences in a YAML file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/filex"
	"github.com/spf13/viper"
)

type Speed string

const (
	Fast   Speed = "fast"
	Normal Speed = "normal"
	Slow   Speed = "slow"
)

const keyStorySpeed = "story_speed"

var speeds = map[Speed]time.Duration{
	Fast:   2 * time.Second,
	Normal: 5 * time.Second,
	Slow:   10 * time.Second,
}

func ParseSpeed(s string) (Speed, error) {
	sp := Speed(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := speeds[sp]; !ok {
		return "", fmt.Errorf("unknown speed %q (want fast, normal or slow)", s)
	}
	return sp, nil
}

// Duration is the dwell time of one story at this speed.
func (s Speed) Duration() time.Duration {
	if d, ok := speeds[s]; ok {
		return d
	}
	return speeds[Normal]
}

// Settings is safe for concurrent use.
type Settings struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// Load reads path if it exists. A missing file yields defaults and is
// created on the first change.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(keyStorySpeed, string(Normal))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	}
	return &Settings{v: v, path: path}, nil
}

// Speed returns the stored speed, or Normal when the stored value is unknown.
func (s *Settings) Speed() Speed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, err := ParseSpeed(s.v.GetString(keyStorySpeed))
	if err != nil {
		return Normal
	}
	return sp
}

func (s *Settings) SetSpeed(sp Speed) error {
	if _, ok := speeds[sp]; !ok {
		return fmt.Errorf("unknown speed %q", sp)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyStorySpeed, string(sp))
	if err := filex.EnsureParentDir(s.path); err != nil {
		return err
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

// StoryDuration implements playback.DurationSource.
func (s *Settings) StoryDuration() time.Duration {
	return s.Speed().Duration()
}
