package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/iomux"
	"github.com/wippyai/iomux/mux"
	"github.com/wippyai/iomux/stream"
)

func main() {
	var (
		stdinFile   = flag.String("stdin", "", "File to feed to the child's stdin")
		teeFile     = flag.String("tee", "", "Also write the child's stdout to this file")
		quiet       = flag.Bool("quiet", false, "Discard the child's stdout")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: muxcat [-stdin file] [-tee file] [-quiet] [-verbose] <command> [args...]")
		fmt.Fprintln(os.Stderr, "       muxcat -i <command> [args...]  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync() //nolint:errcheck
		mux.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(flag.Args(), *stdinFile, *teeFile, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// child wires a spawned command's standard streams to multiplexer
// descriptors. The parent keeps the pipe ends the multiplexer drives.
type child struct {
	cmd   *exec.Cmd
	out   *os.File // read end of the stdout pipe
	errs  *os.File // read end of the stderr pipe
	stdin *os.File // write end of the stdin pipe, nil without -stdin
}

func spawn(argv []string, stdinData []byte) (*child, error) {
	cmd := exec.Command(argv[0], argv[1:]...)

	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	c := &child{cmd: cmd, out: outR, errs: errR}
	if stdinData != nil {
		inR, inW, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		cmd.Stdin = inR
		c.stdin = inW
		defer inR.Close()
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	// The child owns its ends now; keeping them open in the parent would
	// hold the pipes open past child exit.
	outW.Close()
	errW.Close()

	return c, nil
}

func (c *child) descriptors() []iomux.Descriptor {
	descs := []iomux.Descriptor{
		{ID: "stdout", Handle: int(c.out.Fd()), Direction: iomux.Input},
		{ID: "stderr", Handle: int(c.errs.Fd()), Direction: iomux.Input},
	}
	if c.stdin != nil {
		descs = append(descs, iomux.Descriptor{ID: "stdin", Handle: int(c.stdin.Fd()), Direction: iomux.Output})
	}
	return descs
}

func (c *child) close() {
	c.out.Close()
	c.errs.Close()
	if c.stdin != nil {
		c.stdin.Close()
	}
}

func run(argv []string, stdinFile, teeFile string, quiet bool) error {
	var stdinData []byte
	if stdinFile != "" {
		data, err := os.ReadFile(stdinFile)
		if err != nil {
			return fmt.Errorf("read stdin file: %w", err)
		}
		stdinData = data
	}

	c, err := spawn(argv, stdinData)
	if err != nil {
		return err
	}
	defer c.close()

	m, err := mux.New(c.descriptors())
	if err != nil {
		return err
	}
	if stdinData != nil {
		if _, err := m.Buffer("stdin").Write(stdinData); err != nil {
			return err
		}
	}

	var outDst io.Writer = os.Stdout
	if quiet {
		outDst = stream.Discard
	}
	if teeFile != "" {
		f, err := os.Create(teeFile)
		if err != nil {
			return fmt.Errorf("create tee file: %w", err)
		}
		defer f.Close()
		outDst = stream.NewMultiWriter(outDst, f)
	}
	outCount := stream.NewCountingWriter(outDst)
	errCount := stream.NewCountingWriter(os.Stderr)

	stdinOpen := c.stdin != nil
	for !m.Done() {
		if err := m.Poll(); err != nil {
			return err
		}
		if err := relay(m, "stdout", outCount); err != nil {
			return err
		}
		if err := relay(m, "stderr", errCount); err != nil {
			return err
		}
		// Once the stdin payload is flushed, close the pipe so the child
		// sees EOF; the dead handle retires on the next poll.
		if stdinOpen && m.Buffer("stdin").Len() == 0 {
			c.stdin.Close()
			stdinOpen = false
		}
	}

	mux.Logger().Debug("child streams drained",
		zap.Int64("stdout_bytes", outCount.Count()),
		zap.Int64("stderr_bytes", errCount.Count()),
	)

	return c.cmd.Wait()
}

// relay drains one input stream's buffer into dst.
func relay(m *mux.Mux, id string, dst io.Writer) error {
	b := m.Buffer(id)
	if b.Len() == 0 {
		return nil
	}
	if _, err := dst.Write(b.ReadableView(0)); err != nil {
		return err
	}
	b.Discard(b.Len())
	return nil
}
