package commands

import (
	"fmt"
	"os"
	"strings"
)

// Completion provides shell completion scripts for bash and zsh.
// Usage:
//
//	bookingctl completion           # prints completions for all supported shells
//	bookingctl completion bash      # prints bash completion
//	bookingctl completion zsh       # prints zsh completion
func Completion(args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = strings.ToLower(args[0])
	}

	switch shell {
	case "bash":
		printBashCompletion()
		return nil
	case "zsh":
		printZshCompletion()
		return nil
	case "", "all":
		// Print both so Homebrew's generator can detect them
		printBashCompletion()
		fmt.Println()
		printZshCompletion()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown shell: %s (supported: bash, zsh)\n", shell)
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func printBashCompletion() {
	fmt.Println(`# bash completion for bookingctl
_bookingctl_completions()
{
    local cur prev words cword
    _init_completion || return

    local -a commands
    commands=(
        up install doctor completion help version
    )

    case ${COMP_CWORD} in
        1)
            COMPREPLY=( $(compgen -W "${commands[*]} --dev --port --force-install --watch" -- "$cur") )
            return ;;
        *)
            case ${COMP_WORDS[1]} in
                up)
                    COMPREPLY=( $(compgen -W "--dev --port --force-install --watch" -- "$cur") ) ;;
                doctor)
                    COMPREPLY=( $(compgen -W "--verbose --fix --port" -- "$cur") ) ;;
                completion)
                    COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") ) ;;
                *)
                    COMPREPLY=( $(compgen -W "--verbose --debug" -- "$cur") ) ;;
            esac
            return ;;
    esac
}
complete -F _bookingctl_completions bookingctl`)
}

func printZshCompletion() {
	fmt.Println(`#compdef bookingctl
_bookingctl() {
  local -a commands
  commands=(
    'up:Start the Booking service'
    'install:Install service dependencies'
    'doctor:Launch readiness check'
    'completion:Generate shell completion scripts'
    'version:Show version'
    'help:Show help'
  )

  _arguments \
    '1: :->cmds' \
    '*:: :->args'

  case $state in
    cmds)
      _describe 'command' commands
      ;;
    args)
      case $words[1] in
        up)
          _values 'options' --dev --port --force-install --watch
          ;;
        doctor)
          _values 'options' --verbose --fix --port
          ;;
        completion)
          _values 'shell' bash zsh
          ;;
        *)
          _message 'arguments'
          ;;
      esac
      ;;
  esac
}
_bookingctl "$@"`)
}
