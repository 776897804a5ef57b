// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/learnhub/learnhub-media-sdk/sdk/config"
)

// EnvDumpPrefix: optional prefix for env lookup (e.g., "LEARNHUB")
const EnvDumpPrefix = ""

// Settings holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive (masked by MaskedSettings)
type Settings struct {
	UploadBackend            string `vkey:"upload_backend"             env:"LEARNHUB_UPLOAD_BACKEND"        persist:"true" default:"media"`
	MediaUploadHost          string `vkey:"media_upload_host"          env:"LEARNHUB_MEDIA_UPLOAD_HOST"     persist:"true" default:"https://api.cloudinary.com/v1_1"`
	MediaDeliveryHost        string `vkey:"media_delivery_host"        env:"LEARNHUB_MEDIA_DELIVERY_HOST"   persist:"true" default:"https://res.cloudinary.com"`
	MediaAccountID           string `vkey:"media_account_id"           env:"LEARNHUB_MEDIA_ACCOUNT_ID"      persist:"true"`
	MediaUploadPreset        string `vkey:"media_upload_preset"        env:"LEARNHUB_MEDIA_UPLOAD_PRESET"   persist:"true" secret:"true"`
	AwsAccessKeyID           string `vkey:"aws_access_key_id"          env:"AWS_ACCESS_KEY_ID"              persist:"true" secret:"true"`
	AwsSecretAccessKey       string `vkey:"aws_secret_access_key"      env:"AWS_SECRET_ACCESS_KEY"          persist:"true" secret:"true"`
	AwsSessionToken          string `vkey:"aws_session_token"          env:"AWS_SESSION_TOKEN"              persist:"true" secret:"true"`
	AwsRegion                string `vkey:"aws_region"                 env:"AWS_REGION"                     persist:"true"`
	AwsEndpointURL           string `vkey:"aws_endpoint_url"           env:"AWS_ENDPOINT_URL"               persist:"true"`
	S3Bucket                 string `vkey:"s3_bucket"                  env:"S3_BUCKET"                      persist:"true"`
	S3PublicBaseURL          string `vkey:"s3_public_base_url"         env:"S3_PUBLIC_BASE_URL"             persist:"true"`
	UploadMaxAttempts        string `vkey:"upload_max_attempts"        env:"LEARNHUB_UPLOAD_MAX_ATTEMPTS"   persist:"true" default:"3"`
	UploadAttemptTimeout     string `vkey:"upload_attempt_timeout"     env:"LEARNHUB_UPLOAD_TIMEOUT"        persist:"true" default:"300s"`
	UploadBackoffStep        string `vkey:"upload_backoff_step"        env:"LEARNHUB_UPLOAD_BACKOFF_STEP"   persist:"true" default:"1s"`
	UploadMultipartThreshold string `vkey:"upload_multipart_threshold" env:"LEARNHUB_UPLOAD_MULTIPART_THRESHOLD" persist:"true"`
	UploadBatchConcurrency   string `vkey:"upload_batch_concurrency"   env:"LEARNHUB_UPLOAD_CONCURRENCY"    persist:"true" default:"4"`
	UpdatedEnvironment       string `vkey:"updated_environment"        env:"UPDATED_ENVIRONMENT"            persist:"true" bind:"false"`
	CurrentEnvironment       string `vkey:"current_environment"        env:"CURRENT_ENVIRONMENT"            persist:"false"`
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// mirror PREFIX_FOO -> FOO (optional)
func mirrorPrefix(prefix string) {
	if prefix == "" {
		return
	}
	upPrefix := strings.ToUpper(prefix) + "_"
	for _, e := range os.Environ() {
		name, val, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(name, upPrefix) {
			continue
		}
		unpref := strings.TrimPrefix(name, upPrefix)
		if os.Getenv(unpref) == "" {
			_ = os.Setenv(unpref, val)
		}
	}
}

// settingsFields visits every tagged field of Settings.
func settingsFields(fn func(f reflect.StructField, key string)) {
	rt := reflect.TypeOf(Settings{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if key := f.Tag.Get("vkey"); key != "" {
			fn(f, key)
		}
	}
}

// BindEnvFromStruct binds env for all fields of Settings using struct tags.
func BindEnvFromStruct(prefix string) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	mirrorPrefix(prefix)

	settingsFields(func(f reflect.StructField, key string) {
		if f.Tag.Get("bind") != "false" {
			env := f.Tag.Get("env")
			if env == "" {
				env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
			}
			_ = viper.BindEnv(key, env)
		}
		if def := f.Tag.Get("default"); def != "" {
			viper.SetDefault(key, def)
		}
	})
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
		Infof("Using env: [%s]", env)
	} else if env == "" || strings.EqualFold(env, "DEFAULT") {
		Infof("Using env: [DEFAULT]")
	} else {
		Warnf("Env %q not found, falling back to [DEFAULT]", env)
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// LoadConfig:
// 1) bind ENV from struct (live)
// 2) load the INI profile if present (ENV-only mode otherwise)
// 3) build config.Config from the resulting Viper values
func LoadConfig(optionalEnv ...string) (config.Config, error) {
	BindEnvFromStruct(EnvDumpPrefix)

	iniPath := getIniPath()
	cfg, err := ini.Load(iniPath)
	if err != nil {
		Infof("Profile %s not found; reading configuration from env variables", iniPath)
		viper.Set(CurrentEnvironment, resolveEnvName(optionalEnv...))
		return ConfigFromViper()
	}

	// active env: --env > DEFAULT.current_environment > default
	env := resolveEnvName(optionalEnv...)
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}
	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return config.Config{}, fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return ConfigFromViper()
}

// ConfigFromViper maps the current Viper values onto config.Config.
func ConfigFromViper() (config.Config, error) {
	timeout, err := durationKey(UploadAttemptTimeout)
	if err != nil {
		return config.Config{}, err
	}
	backoff, err := durationKey(UploadBackoffStep)
	if err != nil {
		return config.Config{}, err
	}

	c := config.Config{
		Backend: viper.GetString(UploadBackend),
		Media: config.MediaConfig{
			UploadHost:   viper.GetString(MediaUploadHost),
			DeliveryHost: viper.GetString(MediaDeliveryHost),
			AccountID:    viper.GetString(MediaAccountID),
			UploadPreset: viper.GetString(MediaUploadPreset),
		},
		S3: config.S3Config{
			AccessKey:     viper.GetString(AwsAccessKeyID),
			SecretKey:     viper.GetString(AwsSecretAccessKey),
			AccessToken:   viper.GetString(AwsSessionToken),
			Region:        viper.GetString(AwsRegion),
			EndpointURL:   viper.GetString(AwsEndpointURL),
			Bucket:        viper.GetString(S3Bucket),
			PublicBaseURL: viper.GetString(S3PublicBaseURL),
		},
		Upload: config.UploadConfig{
			MaxAttempts:        viper.GetInt(UploadMaxAttempts),
			AttemptTimeout:     timeout,
			BackoffStep:        backoff,
			MultipartThreshold: viper.GetInt64(UploadMultipartThreshold),
			BatchConcurrency:   viper.GetInt(UploadBatchConcurrency),
		},
	}
	return c.WithDefaults(), nil
}

func durationKey(key string) (time.Duration, error) {
	s := strings.TrimSpace(viper.GetString(key))
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q (use units, e.g. 300s)", key, s)
	}
	return d, nil
}

// SaveProfile writes persisted keys into the [envName] section of the INI,
// creating the file if needed.
func SaveProfile(envName string) error {
	iniPath := getIniPath()
	cfg, err := ini.Load(iniPath)
	if err != nil {
		cfg = ini.Empty()
	}
	envName = resolveEnvName(envName)
	sec := cfg.Section(envName)

	settingsFields(func(f reflect.StructField, key string) {
		if f.Tag.Get("persist") != "true" || key == UpdatedEnvKey {
			return
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	})

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	if err := cfg.SaveTo(iniPath); err != nil {
		return fmt.Errorf("failed to save ini: %w", err)
	}
	return nil
}

// MaskedSettings returns the current values with secret keys masked.
func MaskedSettings() map[string]string {
	out := map[string]string{}
	settingsFields(func(f reflect.StructField, key string) {
		val := viper.GetString(key)
		if val == "" {
			return
		}
		if f.Tag.Get("secret") == "true" {
			val = "****"
		}
		out[key] = val
	})
	return out
}
