// Package speech speaks phrases through the text-to-speech command of the
// host: espeak-ng, espeak or spd-say on Linux, say on macOS and System.Speech
// through PowerShell on Windows.
//
// A missing synthesizer is not fatal. Detect falls back to Silent and the
// routine runs with on-screen phrases only.
package speech
