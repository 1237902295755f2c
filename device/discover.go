package device

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// Known emulator player processes and the ADB endpoint each one listens
// on by default.
var emulatorEndpoints = []struct {
	process string
	serial  string
}{
	{"mumuplayer", "127.0.0.1:16384"},
	{"mumuvmmheadless", "127.0.0.1:16384"},
	{"nemuheadless", "127.0.0.1:7555"},
	{"ldplayer", "127.0.0.1:5555"},
	{"dnplayer", "127.0.0.1:5555"},
	{"hd-player", "127.0.0.1:5555"},
}

// DiscoverEmulatorSerial scans running processes for a known emulator and
// returns its default ADB endpoint. Empty string when none is found, in
// which case adb's own device selection applies.
func DiscoverEmulatorSerial() string {
	procs, err := process.Processes()
	if err != nil {
		log.Warn().Err(err).Msg("emulator discovery: cannot list processes")
		return ""
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		lower := strings.ToLower(name)
		for _, e := range emulatorEndpoints {
			if strings.Contains(lower, e.process) {
				log.Info().
					Str("process", name).
					Str("serial", e.serial).
					Msg("emulator detected")
				return e.serial
			}
		}
	}
	return ""
}
