package helper

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/c-bata/go-prompt"
	"github.com/sjzsdu/speak/lang"
)

// ErrEmptyInput 输入为空
var ErrEmptyInput = errors.New("empty input")

// CommandExists checks if a command exists in the system PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ReadFromTerminal 读取一行输入，suggestions 用于按前缀补全
func ReadFromTerminal(promptText string, suggestions []string) (string, error) {
	var result string
	done := make(chan struct{})
	once := &sync.Once{}

	suggests := make([]prompt.Suggest, 0, len(suggestions))
	for _, s := range suggestions {
		suggests = append(suggests, prompt.Suggest{Text: s})
	}

	p := prompt.New(
		func(in string) {
			result = in
			once.Do(func() { close(done) })
		},
		func(d prompt.Document) []prompt.Suggest {
			word := d.TextBeforeCursor()
			if strings.TrimSpace(word) == "" {
				return nil
			}
			return prompt.FilterHasPrefix(suggests, word, true)
		},
		prompt.OptionPrefix(""),
		prompt.OptionTitle("speak"),
		prompt.OptionPrefixTextColor(prompt.Blue),
		prompt.OptionInputTextColor(prompt.DefaultColor),
		prompt.OptionAddKeyBind(
			prompt.KeyBind{
				Key: prompt.ControlV,
				Fn: func(b *prompt.Buffer) {
					result = "vim"
					once.Do(func() { close(done) })
				},
			},
			prompt.KeyBind{
				Key: prompt.ControlC,
				Fn: func(b *prompt.Buffer) {
					result = "quit"
					once.Do(func() { close(done) })
				},
			},
		),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline
		}),
	)

	fmt.Print(promptText)

	go p.Run()
	<-done

	return result, nil
}

// ReadFromVim 用 vim 编辑一段较长的文本，听写模式下可以一次输入多行
func ReadFromVim() (string, error) {
	if !CommandExists("vim") {
		return "", fmt.Errorf("vim not found in PATH")
	}
	f, err := os.CreateTemp("", "speak_input_*.txt")
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}
	tempFile := f.Name()
	f.Close()
	defer os.Remove(tempFile)

	cmd := exec.Command("vim", "+startinsert", tempFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running Vim: %w", err)
	}

	content, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// InputString 读取一条指令，没有补全
func InputString(promptText string) (string, error) {
	return InputWithSuggestions(nil)(promptText)
}

// InputWithSuggestions 返回带补全的输入函数
func InputWithSuggestions(suggestions []string) func(string) (string, error) {
	return func(promptText string) (string, error) {
		fmt.Println()
		input, err := ReadFromTerminal(promptText, suggestions)
		if err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return "", ErrEmptyInput
		}

		if input == "vim" {
			input, err = ReadFromVim()
			if err != nil {
				return "", fmt.Errorf(lang.T("Error reading vim")+": %w", err)
			}
			fmt.Printf(">%s\n", input)
		}

		return input, nil
	}
}

// LineReader 从管道逐行读取指令，读完返回 io.EOF
func LineReader(r io.Reader) func(string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanAnyLine)
	return func(string) (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
}

func PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	return PromptYesNoFrom(os.Stdin, os.Stdout, prompt, defaultYes)
}

// PromptYesNoFrom 同 PromptYesNo，输入输出可替换
func PromptYesNoFrom(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	fmt.Fprint(out, prompt)
	scanner := bufio.NewScanner(in)
	// Support \n, \r\n and lone \r
	scanner.Split(scanAnyLine)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return defaultYes, err
			}
			return defaultYes, io.EOF
		}
		ans := strings.TrimSpace(scanner.Text())
		if ans == "" {
			return defaultYes, nil
		}
		switch normalizeYN(ans) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(out, lang.T("Please enter y or n: "))
		}
	}
}

// scanAnyLine is like bufio.ScanLines but also treats a lone '\r' as a line ending.
func scanAnyLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		if i > 0 && data[i-1] == '\r' {
			return i + 1, data[:i-1], nil
		}
		return i + 1, data[:i], nil
	}
	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// normalizeYN normalizes full-width and common Chinese yes/no inputs.
func normalizeYN(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	rs := []rune(s)
	for i, r := range rs {
		if r >= 0xFF01 && r <= 0xFF5E {
			rs[i] = r - 0xFEE0
		}
	}
	s = string(rs)
	switch s {
	case "是", "好", "确定":
		return "yes"
	case "否", "不":
		return "no"
	}
	return s
}
