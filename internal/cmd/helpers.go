package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/prompter"
	"github.com/zfogg/blogfront/pkg/store/auth"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, errors.ValidationError("id", fmt.Sprintf("%q is not a post id", arg))
	}
	return id, nil
}

// orPrompt returns value, asking for it when it is empty.
func orPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return prompter.PromptString(label)
}

// requireSession restores the stored session and fails unless it is signed in.
func requireSession(ctx context.Context) error {
	phase, _ := application.Auth.EnsureSession(ctx).Await(ctx)
	if phase != auth.Authenticated {
		return errors.UnauthorizedError("You are not signed in")
	}
	return nil
}
