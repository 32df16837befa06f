// Command taskmuxdemo is a small interactive console for exercising a
// taskmux.Scheduler: spawn tasks, watch them yield and join, and bump
// their priority, all from a line-oriented prompt.
//
// The prompt itself is plain bufio/flag rather than a line-editing
// library, since the go-prompt package's call-site shape could not be
// confirmed from what was available.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeycumines/go-taskmux"
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

func main() {
	minSpare := flag.Int("min-spare", 2, "minimum number of idle driver threads to keep running")
	maxThreads := flag.Int("max-threads", 8, "maximum number of driver threads")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.Parse()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if *verbose {
		zl = zl.Level(zerolog.DebugLevel)
	} else {
		zl = zl.Level(zerolog.InfoLevel)
	}
	log := logiface.New[*izerolog.Event](izerolog.WithZerolog(zl))

	sched := taskmux.NewScheduler(
		taskmux.WithMinSpareThreads(*minSpare),
		taskmux.WithMaxThreads(*maxThreads),
		taskmux.WithLogger(taskmux.NewLogger(log)),
	)
	defer sched.Shutdown()

	console := &console{sched: sched, tasks: map[string]*taskmux.Task{}, log: log}
	console.run(os.Stdin, os.Stdout)
}

type console struct {
	sched *taskmux.Scheduler
	tasks map[string]*taskmux.Task
	log   *logiface.Logger[*izerolog.Event]
}

func (c *console) run(in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "taskmuxdemo — type 'help' for commands")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.dispatch(line, out)
	}
}

func (c *console) dispatch(line string, out *os.File) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(out, "commands: spawn <name> [steps], join <name> <target>, priority <name> <low|normal|high|critical>, stats, quit")

	case "spawn":
		if len(args) < 1 {
			fmt.Fprintln(out, "usage: spawn <name> [steps]")
			return
		}
		name := args[0]
		steps := 3
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				steps = n
			}
		}
		c.spawn(name, steps)
		fmt.Fprintf(out, "spawned %s\n", name)

	case "join":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: join <name> <target>")
			return
		}
		name, targetName := args[0], args[1]
		target, ok := c.tasks[targetName]
		if !ok {
			fmt.Fprintln(out, "unknown target task name")
			return
		}
		c.tasks[name] = taskmux.Spawn(c.sched, func(self *taskmux.Task) {
			self.Join(target)
			c.log.Info().Str("task", name).Str("joined", targetName).Log("woke from join")
		}, taskmux.WithName(name))
		fmt.Fprintf(out, "spawned %s, joined on %s\n", name, targetName)

	case "priority":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: priority <name> <low|normal|high|critical>")
			return
		}
		tk, ok := c.tasks[args[0]]
		if !ok {
			fmt.Fprintln(out, "unknown task name")
			return
		}
		p, ok := parsePriority(args[1])
		if !ok {
			fmt.Fprintln(out, "priority must be one of: low, normal, high, critical")
			return
		}
		tk.SetPriority(p)
		fmt.Fprintf(out, "%s priority now %v\n", args[0], p)

	case "stats":
		s := c.sched.Stats()
		fmt.Fprintf(out, "live=%d spawned=%d finished=%d switches=%d\n", s.LiveTasks, s.TasksSpawned, s.TasksFinished, s.Switches)

	case "quit", "exit":
		os.Exit(0)

	default:
		fmt.Fprintf(out, "unknown command %q\n", cmd)
	}
}

func (c *console) spawn(name string, steps int) {
	c.tasks[name] = taskmux.Spawn(c.sched, func(self *taskmux.Task) {
		for i := 0; i < steps; i++ {
			self.Yield()
		}
		c.log.Info().Str("task", name).Log("finished")
	}, taskmux.WithName(name))
}

func parsePriority(s string) (taskmux.Priority, bool) {
	switch strings.ToLower(s) {
	case "low":
		return taskmux.PriorityLow, true
	case "normal":
		return taskmux.PriorityNormal, true
	case "high":
		return taskmux.PriorityHigh, true
	case "critical":
		return taskmux.PriorityCritical, true
	default:
		return 0, false
	}
}
