package rule

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func TestEventUnmarshal(t *testing.T) {
	payload := `{
		"configRuleArn": "arn:aws:config:eu-west-1:123456789012:config-rule/config-rule-abc123",
		"configRuleName": "root-no-access",
		"executionRoleArn": "arn:aws:iam::123456789012:role/ConfigRuleExecution",
		"resultToken": "token-123",
		"region_name": "us-west-2"
	}`

	var event Event
	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	require.Equal(t, "arn:aws:iam::123456789012:role/ConfigRuleExecution", event.ExecutionRoleArn)
	require.Equal(t, "token-123", event.ResultToken)
	require.Equal(t, "root-no-access", event.ConfigRuleName)
	require.Equal(t, "us-west-2", event.RegionName)
}

func TestEventRegion(t *testing.T) {
	event := Event{ConfigEvent: events.ConfigEvent{
		ConfigRuleArn: "arn:aws:config:eu-west-1:123456789012:config-rule/config-rule-abc123",
	}}

	region, err := event.Region()
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", region)

	event.RegionName = "ap-southeast-2"
	region, err = event.Region()
	require.NoError(t, err)
	require.Equal(t, "ap-southeast-2", region)

	_, err = Event{ConfigEvent: events.ConfigEvent{ConfigRuleArn: "arn:aws:config"}}.Region()
	require.ErrorIs(t, err, ErrInvalidRuleARN)

	_, err = Event{ConfigEvent: events.ConfigEvent{ConfigRuleArn: "arn:aws:config::123:x"}}.Region()
	require.ErrorIs(t, err, ErrInvalidRuleARN)
}

func TestEventValidate(t *testing.T) {
	valid := Event{ConfigEvent: events.ConfigEvent{
		ExecutionRoleArn: "arn:aws:iam::123456789012:role/r",
		ResultToken:      "token",
	}}
	require.NoError(t, valid.Validate())

	missingRole := valid
	missingRole.ExecutionRoleArn = ""
	require.ErrorIs(t, missingRole.Validate(), ErrMissingExecutionRole)

	missingToken := valid
	missingToken.ResultToken = ""
	require.ErrorIs(t, missingToken.Validate(), ErrMissingResultToken)
}
