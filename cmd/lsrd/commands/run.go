package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ak033/462lab5/src/lsr"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd returns the command that starts an lsrd node. The three
// positional arguments are the router id, the local UDP listen port, and
// the path of the static topology file.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <routerid> <routerport> <topologyfile>",
		Short:   "Run node",
		Args:    cobra.ExactArgs(3),
		PreRunE: loadConfig,
		RunE:    runLsrd,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runLsrd(cmd *cobra.Command, args []string) error {
	engine := lsr.NewLSR(_config)

	if err := engine.Init(); err != nil {
		_config.Logger().Error("Cannot initialize engine:", err)
		return err
	}

	engine.Run()

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("moniker", _config.Moniker, "Optional name")

	// Protocol timers
	cmd.Flags().Duration("broadcast-interval", _config.BroadcastInterval, "Time between advertisements of the local row")
	cmd.Flags().Duration("spf-interval", _config.SPFInterval, "Time between shortest-path computations")
	cmd.Flags().Int("ttl", _config.TTLLimit, "Hop budget of originated advertisements")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service")
	cmd.Flags().Bool("no-service", _config.NoService, "Disable the HTTP service")

	// Store
	cmd.Flags().Bool("store", _config.Store, "Use badgerDB instead of in-mem DB")
	cmd.Flags().String("db", _config.DatabaseDir, "Database directory")
	cmd.Flags().Bool("bootstrap", _config.Bootstrap, "Load topology from database")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	if err := bindFlagsLoadViper(cmd); err != nil {
		return err
	}

	routerID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("routerid must be an integer, got %q", args[0])
	}

	routerPort, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("routerport must be an integer, got %q", args[1])
	}

	_config.RouterID = routerID
	_config.BindAddr = fmt.Sprintf("127.0.0.1:%d", routerPort)
	_config.TopologyFile = args[2]

	// If --datadir was explicitly set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	addLogFileHooks(_config.Logger().Logger)

	_config.Logger().WithFields(logrus.Fields{
		"id":                 _config.RouterID,
		"listen":             _config.BindAddr,
		"topology":           _config.TopologyFile,
		"datadir":            _config.DataDir,
		"moniker":            _config.Moniker,
		"broadcast-interval": _config.BroadcastInterval,
		"spf-interval":       _config.SPFInterval,
		"ttl":                _config.TTLLimit,
		"service-listen":     _config.ServiceAddr,
		"no-service":         _config.NoService,
		"store":              _config.Store,
		"log":                _config.LogLevel,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/lsrd.toml (.json, .yaml also work)
	viper.SetConfigName("lsrd")          // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}

// addLogFileHooks tees Info and Debug output to per-level log files in the
// working directory, keeping the console output intact.
func addLogFileHooks(logger *logrus.Logger) {
	pathMap := lfshook.PathMap{}

	if _, err := os.OpenFile("lsrd_info.log", os.O_CREATE|os.O_WRONLY, 0666); err != nil {
		logger.Info("Failed to open lsrd_info.log file, using default stderr")
	} else {
		pathMap[logrus.InfoLevel] = "lsrd_info.log"
	}

	if _, err := os.OpenFile("lsrd_debug.log", os.O_CREATE|os.O_WRONLY, 0666); err != nil {
		logger.Info("Failed to open lsrd_debug.log file, using default stderr")
	} else {
		pathMap[logrus.DebugLevel] = "lsrd_debug.log"
	}

	logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))
}
