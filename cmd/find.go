package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/wavefront"
	"github.com/pdrpinto/wavefront/internal/gridmap"
	"github.com/pdrpinto/wavefront/pkg/logger"
)

const (
	widthFlag           = "width"
	heightFlag          = "height"
	mapFileFlag         = "map-file"
	saveMapFlag         = "save-map"
	densityFlag         = "density"
	seedFlag            = "seed"
	startXFlag          = "start-x"
	startYFlag          = "start-y"
	targetXFlag         = "target-x"
	targetYFlag         = "target-y"
	capacityFlag        = "capacity"
	multiThreadedFlag   = "multi-threaded"
	corridorPruningFlag = "corridor-pruning"
	windowSizeFlag      = "window-size"
	stepLimitFlag       = "step-limit"
	pollIntervalFlag    = "poll-interval"
	timeoutFlag         = "timeout"
	repeatFlag          = "repeat"
	printPathFlag       = "print-path"
	logFormatFlag       = "log-format"
	logLevelFlag        = "log-level"
)

// NewFindCommand returns the command that loads or generates a map and runs
// one or more searches over it.
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a shortest path between two cells",
		Long: `Find a shortest path between two cells of a map read from --map-file or
generated from --seed and --density. The target defaults to the bottom-right
corner. With --repeat the same search runs concurrently over the shared map.`,
		Args: cobra.NoArgs,
		RunE: runFind,
	}

	flags := cmd.Flags()
	flags.Int(widthFlag, 1000, "map width in cells")
	flags.Int(heightFlag, 1000, "map height in cells")
	flags.String(mapFileFlag, "", "raw map file of width*height bytes; a random map is generated when empty")
	flags.String(saveMapFlag, "", "write the loaded or generated map to this raw file")
	flags.Float64(densityFlag, 0.6, "probability that a generated cell is traversable")
	flags.Uint64(seedFlag, 1, "seed of the generated map")
	flags.Int(startXFlag, 0, "start column")
	flags.Int(startYFlag, 0, "start row")
	flags.Int(targetXFlag, -1, "target column (defaults to width-1)")
	flags.Int(targetYFlag, -1, "target row (defaults to height-1)")
	flags.Int(capacityFlag, 30000, "maximum path length accepted")
	flags.Bool(multiThreadedFlag, false, "run two waves toward each other")
	flags.Bool(corridorPruningFlag, false, "restrict the wave to a corridor around the straight line")
	flags.Int(windowSizeFlag, wavefront.DefaultWindowSize, "corridor tolerance in cells")
	flags.Int(stepLimitFlag, 0, "maximum steps a wave may take (0 is unbounded)")
	flags.Duration(pollIntervalFlag, wavefront.DefaultPollInterval, "handshake polling interval")
	flags.Duration(timeoutFlag, 0, "search timeout (0 is none)")
	flags.Int(repeatFlag, 1, "number of concurrent searches")
	flags.Bool(printPathFlag, false, "print the cells of the path")
	flags.String(logFormatFlag, "text", "log format: text or json")
	flags.String(logLevelFlag, "info", "log level: none, debug, info, warn or error")

	flags.VisitAll(func(flag *pflag.Flag) {
		MustBindPFlag(flag.Name, flag)
	})

	return cmd
}

type findConfig struct {
	width, height int
	mapFile       string
	saveMap       string
	density       float64
	seed          uint64
	start, target wavefront.Cell
	capacity      int
	repeat        int
	printPath     bool
}

func readFindConfig() (findConfig, error) {
	cfg := findConfig{
		width:     viper.GetInt(widthFlag),
		height:    viper.GetInt(heightFlag),
		mapFile:   viper.GetString(mapFileFlag),
		saveMap:   viper.GetString(saveMapFlag),
		density:   viper.GetFloat64(densityFlag),
		seed:      viper.GetUint64(seedFlag),
		start:     wavefront.Cell{X: viper.GetInt(startXFlag), Y: viper.GetInt(startYFlag)},
		target:    wavefront.Cell{X: viper.GetInt(targetXFlag), Y: viper.GetInt(targetYFlag)},
		capacity:  viper.GetInt(capacityFlag),
		repeat:    viper.GetInt(repeatFlag),
		printPath: viper.GetBool(printPathFlag),
	}
	if cfg.target.X < 0 {
		cfg.target.X = cfg.width - 1
	}
	if cfg.target.Y < 0 {
		cfg.target.Y = cfg.height - 1
	}
	if cfg.capacity < 0 {
		return cfg, fmt.Errorf("--%s must not be negative", capacityFlag)
	}
	if cfg.repeat < 1 {
		return cfg, fmt.Errorf("--%s must be at least 1", repeatFlag)
	}
	return cfg, nil
}

func loadGrid(cfg findConfig) (*wavefront.Grid, error) {
	var (
		cells []byte
		err   error
	)
	if cfg.mapFile != "" {
		cells, err = gridmap.ReadFile(cfg.mapFile, cfg.width, cfg.height)
	} else {
		var open []int
		for _, c := range []wavefront.Cell{cfg.start, cfg.target} {
			if c.X >= 0 && c.X < cfg.width && c.Y >= 0 && c.Y < cfg.height {
				open = append(open, c.Y*cfg.width+c.X)
			}
		}
		cells, err = gridmap.Generate(cfg.width, cfg.height,
			gridmap.WithDensity(cfg.density),
			gridmap.WithSeed(cfg.seed),
			gridmap.WithOpen(open...),
		)
	}
	if err != nil {
		return nil, err
	}
	grid, err := wavefront.NewGrid(cfg.width, cfg.height, cells)
	if err != nil {
		return nil, err
	}
	if cfg.saveMap != "" {
		if err := gridmap.WriteFile(cfg.saveMap, cells); err != nil {
			return nil, fmt.Errorf("saving map: %w", err)
		}
	}
	return grid, nil
}

func runFind(cmd *cobra.Command, _ []string) error {
	log, err := logger.NewLogger(viper.GetString(logFormatFlag), viper.GetString(logLevelFlag))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := readFindConfig()
	if err != nil {
		return err
	}

	grid, err := loadGrid(cfg)
	if err != nil {
		return err
	}
	log.Info("map ready",
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.String("source", sourceName(cfg)),
		zap.String("saved_to", cfg.saveMap),
	)

	pathfinder := wavefront.New(
		wavefront.WithMultiThreaded(viper.GetBool(multiThreadedFlag)),
		wavefront.WithCorridorPruning(viper.GetBool(corridorPruningFlag), viper.GetInt(windowSizeFlag)),
		wavefront.WithStepLimit(viper.GetInt(stepLimitFlag)),
		wavefront.WithPollInterval(viper.GetDuration(pollIntervalFlag)),
		wavefront.WithTimeout(viper.GetDuration(timeoutFlag)),
		wavefront.WithLogger(log),
	)

	results := make([]searchResult, cfg.repeat)
	g, ctx := errgroup.WithContext(cmd.Context())
	for i := range results {
		g.Go(func() error {
			results[i] = runSearch(ctx, pathfinder, grid, cfg)
			return results[i].fatal
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, result := range results {
		switch {
		case result.err != nil:
			fmt.Fprintf(out, "search %d: %s -> %s: %v (%s)\n", i, cfg.start, cfg.target, result.err, result.elapsed)
		default:
			fmt.Fprintf(out, "search %d: %s -> %s: length %d (%s)\n", i, cfg.start, cfg.target, len(result.path), result.elapsed)
			if cfg.printPath {
				for _, index := range result.path {
					fmt.Fprintf(out, "%s\n", grid.CellAt(index))
				}
			}
		}
	}
	return nil
}

type searchResult struct {
	path    []int
	elapsed time.Duration
	// err is a search outcome reported to the user; fatal aborts the command.
	err   error
	fatal error
}

func runSearch(ctx context.Context, pathfinder *wavefront.Pathfinder, grid *wavefront.Grid, cfg findConfig) searchResult {
	out := make([]int, cfg.capacity)
	begin := time.Now()
	n, err := pathfinder.FindPath(ctx, grid, cfg.start, cfg.target, out)
	result := searchResult{elapsed: time.Since(begin)}
	switch {
	case err == nil:
		result.path = out[:n]
	case errors.Is(err, wavefront.ErrNotFound), errors.Is(err, wavefront.ErrOverflow):
		result.err = err
	default:
		result.fatal = err
	}
	return result
}

func sourceName(cfg findConfig) string {
	if cfg.mapFile != "" {
		return cfg.mapFile
	}
	return fmt.Sprintf("generated(seed=%d, density=%.2f)", cfg.seed, cfg.density)
}
