// Package main provides the CLI entrypoint for sevsegclock: a stopwatch
// and voltmeter on a 4-digit 7-segment display behind two cascaded
// 74HC595 shift registers.
//
// The display shows elapsed minutes and seconds. The reset button puts
// the stopwatch back to 0:00; while the mode button is held the readout
// switches to the potentiometer voltage with two decimals. The sim
// subcommand runs the same loop against a simulated board in the
// terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"

	"github.com/Mariamemad314/sevseg595"
	"github.com/Mariamemad314/sevseg595/input"
	"github.com/Mariamemad314/sevseg595/segsim"
	"github.com/Mariamemad314/sevseg595/stopwatch"
)

const (
	defaultConfigPath = "/etc/sevsegclock/config.toml"
	defaultDataPin    = "GPIO17"
	defaultClockPin   = "GPIO27"
	defaultLatchPin   = "GPIO22"
	defaultResetPin   = "GPIO5"
	defaultModePin    = "GPIO6"
	defaultADCAddr    = 0x48
	defaultADCChannel = 0

	// voltPointDigit puts the decimal point after the second digit, so
	// centivolts read as volts: 245 shows as "02.45".
	voltPointDigit = 1

	// adcRate is the conversion rate requested from the ADS1115. The
	// loop samples far slower than the chip can convert, so a gentle
	// rate keeps the chip in power save.
	adcRate = 10 * physic.Hertz
)

var (
	configPath string

	pinData  string
	pinClock string
	pinLatch string
	pinReset string
	pinMode  string

	i2cBus     string
	adcAddress int
	adcChannel int
	debounce   time.Duration
	dwell      time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sevsegclock",
		Short:         "Stopwatch and voltmeter on a 4-digit 7-segment display",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClockCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "TOML config path")
	rootCmd.PersistentFlags().DurationVar(&dwell, "dwell", sevseg595.DefaultDwell, "per digit dwell during a sweep")
	rootCmd.PersistentFlags().DurationVar(&debounce, "debounce", input.DebounceDelay, "button debounce lockout")

	rootCmd.Flags().StringVar(&pinData, "data", defaultDataPin, "GPIO name of the register data line (DS)")
	rootCmd.Flags().StringVar(&pinClock, "clock", defaultClockPin, "GPIO name of the shift clock line (SHCP)")
	rootCmd.Flags().StringVar(&pinLatch, "latch", defaultLatchPin, "GPIO name of the latch line (STCP)")
	rootCmd.Flags().StringVar(&pinReset, "reset", defaultResetPin, "GPIO name of the reset button")
	rootCmd.Flags().StringVar(&pinMode, "mode", defaultModePin, "GPIO name of the voltage mode button")
	rootCmd.Flags().StringVar(&i2cBus, "i2c", "", "I2C bus of the ADC (default: first available)")
	rootCmd.Flags().IntVar(&adcAddress, "adc-address", defaultADCAddr, "I2C address of the ADS1115")
	rootCmd.Flags().IntVar(&adcChannel, "adc-channel", defaultADCChannel, "ADC channel wired to the potentiometer (0-3)")

	rootCmd.AddCommand(newSimCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runClockCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &pinData, fileCfg.Pins.Data)
	applyStringConfig(cmd, "clock", &pinClock, fileCfg.Pins.Clock)
	applyStringConfig(cmd, "latch", &pinLatch, fileCfg.Pins.Latch)
	applyStringConfig(cmd, "reset", &pinReset, fileCfg.Pins.Reset)
	applyStringConfig(cmd, "mode", &pinMode, fileCfg.Pins.Mode)
	applyStringConfig(cmd, "i2c", &i2cBus, fileCfg.Input.I2CBus)
	applyIntConfig(cmd, "adc-address", &adcAddress, fileCfg.Input.ADCAddress)
	applyIntConfig(cmd, "adc-channel", &adcChannel, fileCfg.Input.ADCChannel)
	if err := applyDurationConfig(cmd, "debounce", &debounce, fileCfg.Input.Debounce); err != nil {
		return err
	}
	if err := applyDurationConfig(cmd, "dwell", &dwell, fileCfg.Display.Dwell); err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host: %w", err)
	}

	dataPin := gpioreg.ByName(pinData)
	if dataPin == nil {
		return fmt.Errorf("gpio pin %q not found", pinData)
	}
	clockPin := gpioreg.ByName(pinClock)
	if clockPin == nil {
		return fmt.Errorf("gpio pin %q not found", pinClock)
	}
	latchPin := gpioreg.ByName(pinLatch)
	if latchPin == nil {
		return fmt.Errorf("gpio pin %q not found", pinLatch)
	}
	resetPin := gpioreg.ByName(pinReset)
	if resetPin == nil {
		return fmt.Errorf("gpio pin %q not found", pinReset)
	}
	modePin := gpioreg.ByName(pinMode)
	if modePin == nil {
		return fmt.Errorf("gpio pin %q not found", pinMode)
	}

	dev, err := sevseg595.New(dataPin, clockPin, latchPin, &sevseg595.Opts{Dwell: dwell})
	if err != nil {
		return err
	}
	defer func() {
		if herr := dev.Halt(); herr != nil {
			log.Printf("failed to halt display: %v", herr)
		}
	}()

	resetBtn, err := input.NewButton(resetPin, debounce)
	if err != nil {
		return err
	}
	modeBtn, err := input.NewButton(modePin, debounce)
	if err != nil {
		return err
	}

	bus, err := i2creg.Open(i2cBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer func() {
		if cerr := bus.Close(); cerr != nil {
			log.Printf("failed to close I2C bus: %v", cerr)
		}
	}()

	if adcAddress < 0 || adcAddress > 0x7F {
		return fmt.Errorf("--adc-address %#x out of range", adcAddress)
	}
	adc, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: uint16(adcAddress)})
	if err != nil {
		return fmt.Errorf("failed to initialize ADS1115: %w", err)
	}
	channel, err := adcChannelByIndex(adcChannel)
	if err != nil {
		return err
	}
	potPin, err := adc.PinForChannel(channel, input.FullScale, adcRate, ads1x15.SaveEnergy)
	if err != nil {
		return fmt.Errorf("failed to configure ADC channel: %w", err)
	}
	defer func() {
		if herr := potPin.Halt(); herr != nil {
			log.Printf("failed to halt ADC pin: %v", herr)
		}
	}()

	meter, err := input.NewMeter(potPin)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw := stopwatch.New()
	go sw.Run(ctx)

	log.Printf("%s on %s and %s buttons, pot on %s channel %d", dev, resetPin, modePin, bus, adcChannel)
	err = runLoop(ctx, dev, sw, resetBtn, modeBtn, meter)

	min, max := meter.Range()
	log.Printf("pot range observed: %s to %s", min, max)
	return err
}

// runLoop is the appliance heart: one multiplex sweep per iteration
// with the controls polled between sweeps, so a press is noticed within
// a sweep time without ever blocking the display.
func runLoop(ctx context.Context, dev *sevseg595.Dev, sw *stopwatch.Counter, resetBtn, modeBtn *input.Button, meter *input.Meter) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		if resetBtn.Poll(now) {
			sw.Reset()
		}
		modeBtn.Poll(now)

		v, err := meter.Sample()
		if err != nil {
			return err
		}

		if modeBtn.Held() {
			err = dev.RenderPoint(input.Centivolts(v), voltPointDigit)
		} else {
			err = dev.Render(sw.MMSS())
		}
		if err != nil {
			return err
		}
	}
}

func adcChannelByIndex(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("--adc-channel must be 0-3, got %d", n)
}

func newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Run the appliance against a simulated board in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runSimCmd,
	}
}

func runSimCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyDurationConfig(cmd, "debounce", &debounce, fileCfg.Input.Debounce); err != nil {
		return err
	}
	if err := applyDurationConfig(cmd, "dwell", &dwell, fileCfg.Display.Dwell); err != nil {
		return err
	}

	reg := segsim.NewRegister()
	data, clock, latch := reg.Pins()
	dev, err := sevseg595.New(data, clock, latch, &sevseg595.Opts{Dwell: dwell})
	if err != nil {
		return err
	}

	resetPin := segsim.NewButtonPin("SIM_S1")
	modePin := segsim.NewButtonPin("SIM_S3")
	pot := segsim.NewPotPin("SIM_POT", 1650*physic.MilliVolt)

	resetBtn, err := input.NewButton(resetPin, debounce)
	if err != nil {
		return err
	}
	modeBtn, err := input.NewButton(modePin, debounce)
	if err != nil {
		return err
	}
	meter, err := input.NewMeter(pot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sw := stopwatch.New()
	go sw.Run(ctx)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- runLoop(ctx, dev, sw, resetBtn, modeBtn, meter)
	}()

	program := tea.NewProgram(segsim.NewModel(reg, resetPin, modePin, pot), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run simulator: %w", err)
	}

	cancel()
	if err := <-loopErr; err != nil {
		return err
	}
	return dev.Halt()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	ed := exec.Command(parts[0], append(parts[1:], path)...)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
