package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// FuzzLoadConfig feeds arbitrary YAML through loading and validation.
func FuzzLoadConfig(f *testing.F) {
	f.Add(sampleYAML)
	f.Add(`modules:
  - name: a
    base: a
    filters:
      - include: ["**"]
    blocks:
      - kind: text`)
	f.Add(`modules: [{name: "1a", base: ""}]`)
	f.Add(`watch: {debounce: soon}`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, src string) {
		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(src)); err != nil {
			return
		}
		cfg, err := LoadFrom(v)
		if err != nil {
			return
		}
		// A loaded configuration is complete and passes validation again.
		for _, m := range cfg.Modules {
			if m.Format == "" || m.Collision == "" || m.Output == "" {
				t.Fatalf("defaults not applied to %+v", m)
			}
		}
		if err := Validate(cfg); err != nil {
			t.Fatalf("loaded configuration does not validate: %v", err)
		}
	})
}

// FuzzParseHCL checks that arbitrary module files never panic on parsing
// or validation.
func FuzzParseHCL(f *testing.F) {
	f.Add(sampleHCL)
	f.Add(`module "x" { base = "x" }`)
	f.Add(`module "x" { base = "x" filter "image" {} }`)
	f.Add(`module {`)

	f.Fuzz(func(t *testing.T, src string) {
		modules, err := ParseHCL("fuzz.hcl", []byte(src))
		if err != nil {
			return
		}
		cfg := &Config{Modules: modules}
		ApplyDefaults(cfg)
		_ = Validate(cfg)
	})
}
