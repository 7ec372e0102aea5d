package config

import "github.com/felix3322/potplayer-translate-installer/internal/messages"

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldBool accepts true or false.
	FieldBool FieldType = "bool"
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldNonNegativeInt accepts zero or a positive integer.
	FieldNonNegativeInt FieldType = "non_negative_int"
)

// Config keys with constrained values.
const (
	FieldInstallVariants   = "install.variants"
	FieldAPIProvider       = "api.provider"
	FieldBehaviorDelay     = "behavior.delay_ms"
	FieldBehaviorRetry     = "behavior.retry_mode"
	FieldBehaviorDebug     = "behavior.debug"
	FieldContextBudget     = "context.token_budget"
	FieldContextTruncation = "context.truncation"
	FieldContextCache      = "context.cache"
)

// FieldOption describes a single selectable value for a field.
type FieldOption struct {
	Value       string
	Description string // empty for options without descriptions
}

// FieldDef describes a single config field's type, constraints, and valid options.
type FieldDef struct {
	Key         string
	Type        FieldType
	Options     []FieldOption
	AllowCustom bool // when true, enum fields also accept freetext values
}

// fields is the ordered registry of config fields. Order matches the wizard
// page flow.
var fields = []FieldDef{
	{
		Key:  FieldInstallVariants,
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "with_context", Description: messages.WizardVariantWithContextDescription},
			{Value: "without_context", Description: messages.WizardVariantWithoutContextDescription},
		},
	},
	{
		Key:         FieldAPIProvider,
		Type:        FieldEnum,
		AllowCustom: true,
		Options:     providerOptions(),
	},
	{Key: FieldBehaviorDelay, Type: FieldNonNegativeInt},
	{
		Key:  FieldBehaviorRetry,
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "off", Description: messages.WizardRetryOffDescription},
			{Value: "once", Description: messages.WizardRetryOnceDescription},
			{Value: "until_success", Description: messages.WizardRetryUntilDescription},
			{Value: "until_success_delay", Description: messages.WizardRetryUntilDelayDescription},
		},
	},
	{Key: FieldContextBudget, Type: FieldNonNegativeInt},
	{
		Key:  FieldContextTruncation,
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: string(TruncationDropOldest), Description: messages.WizardTruncationDropOldestDescription},
			{Value: string(TruncationSmartTrim), Description: messages.WizardTruncationSmartTrimDescription},
		},
	},
	{
		Key:  FieldContextCache,
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: string(CacheAuto), Description: messages.WizardCacheAutoDescription},
			{Value: string(CacheOff), Description: messages.WizardCacheOffDescription},
		},
	},
	{Key: FieldBehaviorDebug, Type: FieldBool},
}

func providerOptions() []FieldOption {
	out := make([]FieldOption, 0, len(providers)+1)
	for _, p := range providers {
		out = append(out, FieldOption{Value: p.Name, Description: p.APIBase})
	}
	return append(out, FieldOption{Value: CustomProvider, Description: messages.WizardProviderCustomDescription})
}

// fieldIndex provides O(1) lookup by key.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}

// LookupField returns the field definition for the given config key.
// Returns false when the key is not in the catalog.
func LookupField(key string) (FieldDef, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldDef{}, false
	}
	return copyFieldDef(fields[i]), true
}

// Fields returns a copy of all registered field definitions in catalog order.
func Fields() []FieldDef {
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		out[i] = copyFieldDef(f)
	}
	return out
}

// FieldOptionValues returns the option values for a field as a plain string slice.
// Returns nil when the key is not in the catalog or has no options.
func FieldOptionValues(key string) []string {
	f, ok := LookupField(key)
	if !ok || len(f.Options) == 0 {
		return nil
	}
	values := make([]string, len(f.Options))
	for i, opt := range f.Options {
		values[i] = opt.Value
	}
	return values
}

// isValidOption checks value against the options of an enum field.
func isValidOption(key string, value string) bool {
	for _, v := range FieldOptionValues(key) {
		if v == value {
			return true
		}
	}
	return false
}

// copyFieldDef returns a deep copy of a FieldDef so callers cannot mutate the registry.
func copyFieldDef(f FieldDef) FieldDef {
	if len(f.Options) > 0 {
		opts := make([]FieldOption, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}
