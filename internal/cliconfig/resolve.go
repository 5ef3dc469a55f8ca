package cliconfig

// ResolveContextName resolves which context to use.
// Priority: explicit flag > env var > current context.
func ResolveContextName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envCtx := GetContextFromEnv(); envCtx != "" {
		return envCtx
	}
	cfg, err := LoadContextConfig()
	if err != nil {
		return DefaultContextName
	}
	return cfg.CurrentContext
}

// ResolveAPIURL resolves the catalog API base URL.
// Priority: explicit flag > env var > current context > default.
func ResolveAPIURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if url := GetAPIURLFromEnv(); url != "" {
		return url
	}
	cfg, err := LoadContextConfig()
	if err != nil {
		return DefaultAPIURL
	}
	if ctx := cfg.GetCurrentContext(); ctx != nil && ctx.APIURL != "" {
		return ctx.APIURL
	}
	return DefaultAPIURL
}

// ResolveToken resolves the auth token.
// Priority: env var > current context > empty (fail closed at the backend).
func ResolveToken() string {
	if tok := GetTokenFromEnv(); tok != "" {
		return tok
	}
	cfg, err := LoadContextConfig()
	if err != nil {
		return ""
	}
	if ctx := cfg.GetCurrentContext(); ctx != nil {
		return ctx.Token
	}
	return ""
}

// SaveToken stores the token (and the account it belongs to) in the current
// context. Called after a successful login.
func SaveToken(token, username string) error {
	cfg, err := LoadContextConfig()
	if err != nil {
		return err
	}
	ctx := cfg.GetCurrentContext()
	if ctx == nil {
		ctx = &Context{APIURL: DefaultAPIURL}
		cfg.Contexts[cfg.CurrentContext] = ctx
	}
	ctx.Token = token
	ctx.Username = username
	return SaveContextConfig(cfg)
}

// ClearToken removes the stored credential from the current context.
// Called on logout.
func ClearToken() error {
	cfg, err := LoadContextConfig()
	if err != nil {
		return err
	}
	ctx := cfg.GetCurrentContext()
	if ctx == nil {
		return nil
	}
	ctx.Token = ""
	ctx.Username = ""
	return SaveContextConfig(cfg)
}
