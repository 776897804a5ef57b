// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/learnhub/learnhub-media-sdk/sdk/services/media"
	"github.com/learnhub/learnhub-media-sdk/sdk/utils"
)

type options struct {
	env         string
	folder      string
	category    string
	maxSize     int64
	allow       []string
	backend     string
	account     string
	preset      string
	output      string
	verbose     bool
	saveProfile bool
	showConfig  bool
}

func main() {
	var o options
	fs := pflag.NewFlagSet("learnhub-upload", pflag.ExitOnError)
	fs.StringVarP(&o.env, "env", "e", "", "profile section of ~/"+utils.IniName)
	fs.StringVarP(&o.folder, "folder", "f", media.DefaultFolder, "destination folder")
	fs.StringVarP(&o.category, "category", "c", string(media.CategoryAuto), "resource category: image, video, raw, auto")
	fs.Int64Var(&o.maxSize, "max-size", 0, "reject files larger than this many bytes (0 = no limit)")
	fs.StringSliceVar(&o.allow, "allow", nil, "allowed media type patterns, e.g. image/*,application/pdf")
	fs.StringVar(&o.backend, "backend", "", "upload backend: media or s3")
	fs.StringVar(&o.account, "account", "", "media account id")
	fs.StringVar(&o.preset, "preset", "", "unsigned upload preset")
	fs.StringVarP(&o.output, "output", "o", "short", "output format: short, json, yaml")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "show upload progress")
	fs.BoolVar(&o.saveProfile, "save-profile", false, "persist the effective settings into the profile")
	fs.BoolVar(&o.showConfig, "show-config", false, "print the effective settings (secrets masked) and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: learnhub-upload [flags] FILE...\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 && !o.showConfig {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, paths []string) error {
	if _, err := utils.LoadConfig(o.env); err != nil {
		return err
	}
	overrides := map[string]string{
		utils.UploadBackend:     o.backend,
		utils.MediaAccountID:    o.account,
		utils.MediaUploadPreset: o.preset,
	}
	for k, v := range overrides {
		if v != "" {
			viper.Set(k, v)
		}
	}
	conf, err := utils.ConfigFromViper()
	if err != nil {
		return err
	}
	if o.saveProfile {
		if err := utils.SaveProfile(o.env); err != nil {
			return err
		}
		utils.Infof("Profile saved")
	}
	if o.showConfig {
		out, err := utils.FormatOutput(utils.MaskedSettings(), o.output)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	category, err := media.ParseCategory(o.category)
	if err != nil {
		return err
	}

	svc, err := media.NewMediaService(ctx, conf)
	if err != nil {
		return err
	}
	svc.Logf = utils.Warnf

	items, closeAll, err := prepare(paths, o, category)
	defer closeAll()
	if err != nil {
		return err
	}

	utils.Infof("Uploading %d file(s) to %s (backend %s)", len(items), o.folder, conf.Backend)
	var line *utils.ProgressLine
	if o.verbose {
		line = utils.NewProgressLine(os.Stderr)
		for i := range items {
			name := items[i].File.Name
			items[i].Options.OnProgress = func(p media.Progress) {
				line.Update(name, p.Loaded, p.Total)
			}
		}
	}

	outcomes := svc.UploadMany(ctx, items)
	if line != nil {
		line.Done()
	}

	if err := printOutcomes(outcomes, o.output); err != nil {
		return err
	}
	if failed := media.Failed(outcomes); len(failed) > 0 {
		return fmt.Errorf("%d of %d uploads failed", len(failed), len(outcomes))
	}
	return nil
}

// prepare opens and validates every path before anything is sent.
func prepare(paths []string, o options, category media.Category) ([]media.BatchItem, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	rules := media.ValidationRules{MaxSizeBytes: o.maxSize, AllowedTypes: o.allow}
	items := make([]media.BatchItem, 0, len(paths))
	for _, p := range paths {
		file, fh, err := media.OpenFile(p)
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, fh)
		if err := media.Validate(file, rules); err != nil {
			return nil, closeAll, fmt.Errorf("%s: %w", p, err)
		}
		items = append(items, media.BatchItem{
			File:    file,
			Options: media.UploadOptions{Folder: o.folder, Category: category},
		})
	}
	return items, closeAll, nil
}

func printOutcomes(outcomes []media.BatchOutcome, format string) error {
	if utils.TranslateFormat(format) == "short" {
		for _, oc := range outcomes {
			if oc.Err != nil {
				fmt.Printf("✗ %s: %v\n", oc.Name, oc.Err)
				continue
			}
			fmt.Printf("✓ %s → %s (%s)\n", oc.Name, oc.Result.SecureURL, utils.HumanBytes(oc.Result.Bytes))
		}
		return nil
	}

	type row struct {
		Name   string        `json:"name"`
		Result *media.Result `json:"result,omitempty"`
		Error  string        `json:"error,omitempty"`
		Kind   string        `json:"kind,omitempty"`
	}
	rows := make([]row, 0, len(outcomes))
	for _, oc := range outcomes {
		r := row{Name: oc.Name, Result: oc.Result}
		if oc.Err != nil {
			r.Error = oc.Err.Error()
			r.Kind = string(media.KindOf(oc.Err))
		}
		rows = append(rows, r)
	}
	out, err := utils.FormatOutput(rows, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
