package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"autoplayer/internal/detect"
	"autoplayer/internal/keys"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var (
	ErrBadLane = errors.New("bad lane entry (expected x:key)")
	ErrBadX    = errors.New("bad x coordinate")
	ErrNoLanes = errors.New("no lanes parsed from LANES")
	ErrBackend = errors.New("unknown backend")
)

// Бэкенды чтения пикселей, ввода и отслеживания клавиши остановки
const (
	SamplerGDI        = "gdi"
	SamplerScreenshot = "screenshot"

	InjectorSendInput = "sendinput"
	InjectorArduino   = "arduino"

	AbortPoll = "poll"
	AbortHook = "hook"
)

// Lane: одна дорожка: колонка пикселя и клавиша
type Lane struct {
	X   int
	Key keys.Key
}

// Config: неизменяемый снимок всех параметров запуска
type Config struct {
	Lanes    []Lane
	HitZoneY int

	BrightnessThresh int
	Tolerance        int

	MinHold         time.Duration
	ReleaseDebounce time.Duration
	FocusPoll       time.Duration
	NotFocusedSleep time.Duration

	LoopYieldEvery uint32
	WindowTitle    string
	Debug          bool

	LogFilePath  string
	Sampler      string
	Injector     string
	SerialPort   string
	BaudRate     int
	AbortSource  string
	HighPriority bool
	MetricsFile  string

	// Warnings: значения, которые не удалось разобрать и заменили значением по умолчанию
	Warnings []string
}

// Thresholds возвращает предрассчитанные пороги классификатора
func (c *Config) Thresholds() detect.Thresholds {
	return detect.NewThresholds(c.BrightnessThresh, c.Tolerance)
}

type setting struct {
	key  string
	envs []string
	def  interface{}
}

var settings = []setting{
	{"lanes", []string{"LANES"}, "731:e,881:r,1031:t,1181:y"},
	{"hit_zone_y", []string{"HIT_ZONE_Y"}, 880},
	{"brightness_thresh", []string{"BRIGHTNESS_THRESH"}, 240},
	{"tolerance", []string{"TOLERANCE"}, 120},
	{"min_hold_ms", []string{"MIN_HOLD_MS"}, 20},
	{"release_debounce_ms", []string{"RELEASE_DEBOUNCE_MS"}, 12},
	{"focus_poll_ms", []string{"FOCUS_POLL_MS"}, 50},
	{"not_focused_sleep_ms", []string{"NOT_FOCUSED_SLEEP_MS"}, 100},
	{"loop_yield_every", []string{"LOOP_YIELD_EVERY"}, 0},
	{"window_title", []string{"WINDOW_TITLE_SUBSTR", "ROBLOX_TITLE_SUBSTR"}, "Roblox"},
	{"debug", []string{"DEBUG"}, 0},
	{"log_file", []string{"LOG_FILE"}, ""},
	{"sampler", []string{"SAMPLER"}, SamplerGDI},
	{"injector", []string{"INJECTOR"}, InjectorSendInput},
	{"serial_port", []string{"SERIAL_PORT"}, "COM3"},
	{"baud_rate", []string{"BAUD_RATE"}, 9600},
	{"abort_source", []string{"ABORT_SOURCE"}, AbortPoll},
	{"high_priority", []string{"HIGH_PRIORITY"}, 1},
	{"metrics_file", []string{"METRICS_FILE"}, ""},
}

// NewViper создает viper с умолчаниями и привязкой к переменным окружения.
// Пустой configFile означает необязательный autoplayer.yaml в текущей папке.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(append([]string{s.key}, s.envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", s.key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("autoplayer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// InitConfig читает окружение (и необязательный файл) и возвращает проверенную конфигурацию
func InitConfig(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return Load(v)
}

// Load собирает Config из viper. Ошибки дорожек и бэкендов фатальны,
// неразборчивые числа заменяются значениями по умолчанию с предупреждением.
func Load(v *viper.Viper) (*Config, error) {
	r := reader{v: v}

	lanes, err := ParseLanes(r.str("lanes"))
	if err != nil {
		return nil, err
	}

	c := &Config{
		Lanes:            lanes,
		HitZoneY:         r.intValue("hit_zone_y", 880),
		BrightnessThresh: r.intValue("brightness_thresh", 240),
		Tolerance:        r.intValue("tolerance", 120),
		MinHold:          r.millis("min_hold_ms", 20),
		ReleaseDebounce:  r.millis("release_debounce_ms", 12),
		FocusPoll:        r.millis("focus_poll_ms", 50),
		NotFocusedSleep:  r.millis("not_focused_sleep_ms", 100),
		LoopYieldEvery:   r.uintValue("loop_yield_every", 0),
		WindowTitle:      r.str("window_title"),
		Debug:            r.flag("debug", false),
		LogFilePath:      strings.TrimSpace(r.str("log_file")),
		Sampler:          strings.ToLower(strings.TrimSpace(r.str("sampler"))),
		Injector:         strings.ToLower(strings.TrimSpace(r.str("injector"))),
		SerialPort:       strings.TrimSpace(r.str("serial_port")),
		BaudRate:         int(r.uintValue("baud_rate", 9600)),
		AbortSource:      strings.ToLower(strings.TrimSpace(r.str("abort_source"))),
		HighPriority:     r.flag("high_priority", true),
		MetricsFile:      strings.TrimSpace(r.str("metrics_file")),
	}
	c.Warnings = r.warnings

	var errs error
	errs = multierr.Append(errs, checkBackend("SAMPLER", c.Sampler, SamplerGDI, SamplerScreenshot))
	errs = multierr.Append(errs, checkBackend("INJECTOR", c.Injector, InjectorSendInput, InjectorArduino))
	errs = multierr.Append(errs, checkBackend("ABORT_SOURCE", c.AbortSource, AbortPoll, AbortHook))
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// ParseLanes разбирает строку вида "731:e,881:r,1031:t,1181:y".
// Возвращает все ошибки записей сразу.
func ParseLanes(spec string) ([]Lane, error) {
	var lanes []Lane
	var errs error

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		xStr, keyStr, ok := strings.Cut(part, ":")
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrBadLane, part))
			continue
		}

		x, err := strconv.Atoi(strings.TrimSpace(xStr))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrBadX, xStr))
			continue
		}

		key, err := keys.Parse(keyStr)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		lanes = append(lanes, Lane{X: x, Key: key})
	}

	if errs != nil {
		return nil, errs
	}
	if len(lanes) == 0 {
		return nil, ErrNoLanes
	}
	return lanes, nil
}

func checkBackend(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w %s=%q (expected %s)", ErrBackend, name, value, strings.Join(allowed, "|"))
}

// reader читает значения как строки и запоминает неразобранные
type reader struct {
	v        *viper.Viper
	warnings []string
}

func (r *reader) str(key string) string {
	return cast.ToString(r.v.Get(key))
}

func (r *reader) intValue(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.str(key)))
	if err != nil {
		r.warn(key, def)
		return def
	}
	return n
}

func (r *reader) uintValue(key string, def uint32) uint32 {
	n, err := strconv.ParseUint(strings.TrimSpace(r.str(key)), 10, 32)
	if err != nil {
		r.warn(key, def)
		return def
	}
	return uint32(n)
}

func (r *reader) millis(key string, def uint32) time.Duration {
	return time.Duration(r.uintValue(key, def)) * time.Millisecond
}

// flag принимает true/false и числа, ненулевое число означает включено
func (r *reader) flag(key string, def bool) bool {
	raw := strings.TrimSpace(r.str(key))
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		r.warn(key, def)
		return def
	}
	return n != 0
}

func (r *reader) warn(key string, def interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s=%q is not a valid value, using %v", key, r.str(key), def))
}
