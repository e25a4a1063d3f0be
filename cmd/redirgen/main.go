package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/redirgen/redirgen/internal/cdn"
	"github.com/redirgen/redirgen/internal/emit"
	"github.com/redirgen/redirgen/internal/exclude"
	"github.com/redirgen/redirgen/internal/site"
)

var version = "dev"

type config struct {
	Blog         string   `toml:"blog"`
	Site         string   `toml:"site"`
	Base         string   `toml:"base"`
	Exclude      []string `toml:"exclude"`
	ExcludeGlobs []string `toml:"exclude-globs"`

	CloudFront cloudfrontConfig `toml:"cloudfront"`
}

type cloudfrontConfig struct {
	DistributionID string `toml:"distribution-id"`
	Region         string `toml:"region"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "invalidate":
		runInvalidate(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: redirgen <command> [flags]\n\nCommands:\n  generate    Write redirect stubs for relocated blog pages into the site repo\n  invalidate  Invalidate the legacy URL paths on a CloudFront distribution\n  version     Print version\n\nRun 'redirgen <command> --help' for flags.\n")
}

// stringList is a repeatable flag value.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "redirgen.toml", "path to config file")
	blogDir := fs.String("blog", "", "path to the built blog output directory (e.g. blog/public)")
	siteDir := fs.String("site", "", "path to the site repo root receiving redirect stubs")
	base := fs.String("base", "", "URL prefix of the new blog location (default: /blog/)")
	overwrite := fs.Bool("overwrite", false, "overwrite existing redirect files in the site repo")
	dryRun := fs.Bool("dry-run", false, "don't write files; just print what would be done")
	var excludes, excludeGlobs stringList
	fs.Var(&excludes, "exclude", "relative path (from blog root) to exclude; repeatable")
	fs.Var(&excludeGlobs, "exclude-glob", "glob pattern of relative paths to exclude; repeatable")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	// CLI flags override config
	if *blogDir != "" {
		cfg.Blog = *blogDir
	}
	if *siteDir != "" {
		cfg.Site = *siteDir
	}
	if *base != "" {
		cfg.Base = *base
	}
	if cfg.Base == "" {
		cfg.Base = "/blog/"
	}
	cfg.Exclude = append(cfg.Exclude, excludes...)
	cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, excludeGlobs...)

	if cfg.Blog == "" {
		fatal("blog directory is required (set in config file or via --blog)")
	}
	if cfg.Site == "" {
		fatal("site directory is required (set in config file or via --site)")
	}

	blogRoot, err := filepath.Abs(cfg.Blog)
	if err != nil {
		fatal("resolving blog path: %v", err)
	}
	siteRoot, err := filepath.Abs(cfg.Site)
	if err != nil {
		fatal("resolving site path: %v", err)
	}

	// Precondition failures abort before traversal, without a summary and
	// without a failure exit code.
	if err := site.CheckRoot(blogRoot); err != nil {
		fmt.Fprintf(os.Stderr, "error: blog %v\n", err)
		return
	}
	if err := site.CheckRoot(siteRoot); err != nil {
		fmt.Fprintf(os.Stderr, "error: site %v\n", err)
		return
	}

	excludeSet := buildExcludeSet(cfg)

	pages, err := site.ScanPages(blogRoot)
	if err != nil {
		fatal("scanning blog directory: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Found %d page directories in %s\n", len(pages), blogRoot)

	plan := site.BuildPlan(pages, siteRoot, site.NormalizeBase(cfg.Base), excludeSet)

	for _, w := range site.Lint(plan) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	counters, err := emit.Apply(plan, emit.Options{
		Overwrite: *overwrite,
		DryRun:    *dryRun,
		Log:       os.Stderr,
	})
	if err != nil {
		fatal("%v", err)
	}

	fmt.Fprintf(os.Stderr, "\nSummary:\n")
	fmt.Fprintf(os.Stderr, "  created: %d\n", counters.Created)
	fmt.Fprintf(os.Stderr, "  overwritten: %d\n", counters.Overwritten)
	fmt.Fprintf(os.Stderr, "  skipped: %d\n", counters.Skipped)
	if *dryRun {
		fmt.Fprintf(os.Stderr, "Note: dry-run mode; no files were written.\n")
	}
}

func runInvalidate(args []string) {
	fs := flag.NewFlagSet("invalidate", flag.ExitOnError)
	configPath := fs.String("config", "redirgen.toml", "path to config file")
	blogDir := fs.String("blog", "", "path to the built blog output directory")
	distributionID := fs.String("distribution-id", "", "CloudFront distribution ID serving the legacy URLs")
	region := fs.String("region", "", "AWS region override")
	dryRun := fs.Bool("dry-run", false, "print invalidation paths without calling AWS")
	var excludes, excludeGlobs stringList
	fs.Var(&excludes, "exclude", "relative path (from blog root) to exclude; repeatable")
	fs.Var(&excludeGlobs, "exclude-glob", "glob pattern of relative paths to exclude; repeatable")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	if *blogDir != "" {
		cfg.Blog = *blogDir
	}
	if *distributionID != "" {
		cfg.CloudFront.DistributionID = *distributionID
	}
	if *region != "" {
		cfg.CloudFront.Region = *region
	}
	cfg.Exclude = append(cfg.Exclude, excludes...)
	cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, excludeGlobs...)

	if cfg.Blog == "" {
		fatal("blog directory is required (set in config file or via --blog)")
	}
	if !*dryRun && cfg.CloudFront.DistributionID == "" {
		fatal("distribution-id is required (set in config file or via --distribution-id)")
	}

	blogRoot, err := filepath.Abs(cfg.Blog)
	if err != nil {
		fatal("resolving blog path: %v", err)
	}
	if err := site.CheckRoot(blogRoot); err != nil {
		fatal("blog %v", err)
	}

	pages, err := site.ScanPages(blogRoot)
	if err != nil {
		fatal("scanning blog directory: %v", err)
	}

	rels, _ := site.Qualify(pages, buildExcludeSet(cfg))
	paths := cdn.BuildPaths(rels)
	fmt.Fprintf(os.Stderr, "Invalidating %d paths\n", len(paths))

	if *dryRun {
		for _, p := range paths {
			fmt.Println(p)
		}
		fmt.Fprintf(os.Stderr, "\nDry run complete. No changes made.\n")
		return
	}

	ctx := context.Background()
	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.CloudFront.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.CloudFront.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		fatal("loading AWS config: %v", err)
	}
	cfClient := cloudfront.NewFromConfig(awsCfg)

	id, err := cdn.Invalidate(ctx, cfClient, cfg.CloudFront.DistributionID, paths)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Invalidation created: %s\n", id)
}

func buildExcludeSet(cfg config) *exclude.Set {
	set := exclude.New()
	for _, rel := range cfg.Exclude {
		set.Add(site.NormalizeRel(rel))
	}
	for _, g := range cfg.ExcludeGlobs {
		if err := set.AddGlob(g); err != nil {
			fatal("%v", err)
		}
	}
	return set
}

func loadConfig(path string) config {
	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return config{} // no config file; flags alone are fine
		}
		fatal("reading config file %s: %v", path, err)
	}
	return cfg
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
