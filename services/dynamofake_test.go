package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"tripmate_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoDBAPI. It understands the expression
// forms the services actually issue (SET/REMOVE clauses, attribute_exists,
// scalar comparisons, counter arithmetic, list_append) and enforces
// transaction conditions the way DynamoDB does: evaluate everything first,
// apply everything or nothing.
type fakeDynamo struct {
	mu      sync.Mutex
	tables  map[string]map[string]map[string]types.AttributeValue
	schemas map[string][]string

	// onBeforeTransact runs once before the next transaction evaluates,
	// outside the lock. Lets tests interleave a competing writer.
	onBeforeTransact func()
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
		schemas: map[string][]string{
			models.TripsTable:           {"tripId"},
			models.GroupsTable:          {"groupId"},
			models.GroupMessagesTable:   {"groupId", "createdAt"},
			models.NotificationsTable:   {"userId", "createdAt"},
			models.DeletedMessagesTable: {"messageId"},
		},
	}
}

func newTestStore(t *testing.T) (*DynamoService, *fakeDynamo) {
	t.Helper()
	fake := newFakeDynamo()
	return &DynamoService{Client: fake}, fake
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func (f *fakeDynamo) flatKey(tableName string, item map[string]types.AttributeValue) (string, error) {
	schema, ok := f.schemas[tableName]
	if !ok {
		return "", fmt.Errorf("unknown table %q", tableName)
	}
	parts := make([]string, 0, len(schema))
	for _, attr := range schema {
		s, ok := item[attr].(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("missing key attribute %q for table %q", attr, tableName)
		}
		parts = append(parts, s.Value)
	}
	return strings.Join(parts, "|"), nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, err := f.flatKey(*params.TableName, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(*params.TableName)[key]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.putLocked(*params.TableName, params.Item); err != nil {
		return nil, err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) putLocked(tableName string, item map[string]types.AttributeValue) error {
	key, err := f.flatKey(tableName, item)
	if err != nil {
		return err
	}
	f.table(tableName)[key] = copyItem(item)
	return nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, err := f.flatKey(*params.TableName, params.Key)
	if err != nil {
		return nil, err
	}

	item, ok := f.table(*params.TableName)[key]
	if !ok {
		item = copyItem(params.Key)
	}
	if err := applyUpdateExpr(item, *params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues); err != nil {
		return nil, err
	}
	f.table(*params.TableName)[key] = item
	return &dynamodb.UpdateItemOutput{Attributes: copyItem(item)}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, err := f.flatKey(*params.TableName, params.Key)
	if err != nil {
		return nil, err
	}
	delete(f.table(*params.TableName), key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// The services only ever issue partition-key equality conditions.
	expr := strings.TrimSpace(*params.KeyConditionExpression)
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition %q", expr)
	}
	attr := strings.TrimSpace(parts[0])
	want, ok := params.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
	if !ok {
		return nil, fmt.Errorf("missing value for key condition %q", expr)
	}

	var matches []map[string]types.AttributeValue
	for _, item := range f.table(*params.TableName) {
		if avEqual(item[attr], want) {
			matches = append(matches, copyItem(item))
		}
	}

	schema := f.schemas[*params.TableName]
	if len(schema) == 2 {
		sortAttr := schema[1]
		sort.Slice(matches, func(i, j int) bool {
			return stringAV(matches[i][sortAttr]) < stringAV(matches[j][sortAttr])
		})
	}
	if params.ScanIndexForward != nil && !*params.ScanIndexForward {
		for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
			matches[i], matches[j] = matches[j], matches[i]
		}
	}
	if params.Limit != nil && int(*params.Limit) < len(matches) {
		matches = matches[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: matches}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []map[string]types.AttributeValue
	for _, item := range f.table(*params.TableName) {
		items = append(items, copyItem(item))
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamo) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for tableName, requests := range params.RequestItems {
		for _, request := range requests {
			if request.PutRequest != nil {
				if err := f.putLocked(tableName, request.PutRequest.Item); err != nil {
					return nil, err
				}
			}
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if hook := f.onBeforeTransact; hook != nil {
		f.onBeforeTransact = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// DynamoDB rejects oversized transactions outright.
	if len(params.TransactItems) > 100 {
		return nil, fmt.Errorf("transaction has %d items, limit is 100", len(params.TransactItems))
	}

	// Evaluate all conditions against the current state first; a single
	// failure cancels the whole transaction.
	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, op := range params.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}

		var tableName, condition string
		var opKey map[string]types.AttributeValue
		var names map[string]string
		var values map[string]types.AttributeValue
		switch {
		case op.Update != nil && op.Update.ConditionExpression != nil:
			tableName, condition = *op.Update.TableName, *op.Update.ConditionExpression
			opKey, names, values = op.Update.Key, op.Update.ExpressionAttributeNames, op.Update.ExpressionAttributeValues
		case op.Delete != nil && op.Delete.ConditionExpression != nil:
			tableName, condition = *op.Delete.TableName, *op.Delete.ConditionExpression
			opKey, names, values = op.Delete.Key, op.Delete.ExpressionAttributeNames, op.Delete.ExpressionAttributeValues
		default:
			continue
		}

		key, err := f.flatKey(tableName, opKey)
		if err != nil {
			return nil, err
		}
		item := f.table(tableName)[key]
		ok, err := evalConditionExpr(item, condition, names, values)
		if err != nil {
			return nil, err
		}
		if !ok {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, op := range params.TransactItems {
		switch {
		case op.Update != nil:
			key, err := f.flatKey(*op.Update.TableName, op.Update.Key)
			if err != nil {
				return nil, err
			}
			item, ok := f.table(*op.Update.TableName)[key]
			if !ok {
				item = copyItem(op.Update.Key)
			}
			if err := applyUpdateExpr(item, *op.Update.UpdateExpression, op.Update.ExpressionAttributeNames, op.Update.ExpressionAttributeValues); err != nil {
				return nil, err
			}
			f.table(*op.Update.TableName)[key] = item
		case op.Put != nil:
			if err := f.putLocked(*op.Put.TableName, op.Put.Item); err != nil {
				return nil, err
			}
		case op.Delete != nil:
			key, err := f.flatKey(*op.Delete.TableName, op.Delete.Key)
			if err != nil {
				return nil, err
			}
			delete(f.table(*op.Delete.TableName), key)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// --- expression evaluation -------------------------------------------------

func resolvePath(path string, names map[string]string) []string {
	segments := strings.Split(strings.TrimSpace(path), ".")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "#") {
			resolved, ok := names[segment]
			if ok {
				segments[i] = resolved
			}
		}
	}
	return segments
}

func getAttr(item map[string]types.AttributeValue, segments []string) (types.AttributeValue, bool) {
	current := item
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		m, ok := value.(*types.AttributeValueMemberM)
		if !ok {
			return nil, false
		}
		current = m.Value
	}
	return nil, false
}

func setAttr(item map[string]types.AttributeValue, segments []string, value types.AttributeValue) {
	current := item
	for _, segment := range segments[:len(segments)-1] {
		m, ok := current[segment].(*types.AttributeValueMemberM)
		if !ok {
			m = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
			current[segment] = m
		}
		current = m.Value
	}
	current[segments[len(segments)-1]] = value
}

func removeAttr(item map[string]types.AttributeValue, segments []string) {
	current := item
	for _, segment := range segments[:len(segments)-1] {
		m, ok := current[segment].(*types.AttributeValueMemberM)
		if !ok {
			return
		}
		current = m.Value
	}
	delete(current, segments[len(segments)-1])
}

// splitTopLevel splits on sep outside parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func applyUpdateExpr(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	tokens := strings.Fields(expr)
	clause := ""
	var buffers = map[string][]string{}
	for _, token := range tokens {
		if token == "SET" || token == "REMOVE" {
			clause = token
			continue
		}
		if clause == "" {
			return fmt.Errorf("update expression %q does not start with a clause", expr)
		}
		buffers[clause] = append(buffers[clause], token)
	}

	for _, assignment := range splitTopLevel(strings.Join(buffers["SET"], " "), ',') {
		assignment = strings.TrimSpace(assignment)
		if assignment == "" {
			continue
		}
		sides := strings.SplitN(assignment, "=", 2)
		if len(sides) != 2 {
			return fmt.Errorf("bad SET assignment %q", assignment)
		}
		target := resolvePath(sides[0], names)
		value, err := evalRHS(item, strings.TrimSpace(sides[1]), names, values)
		if err != nil {
			return err
		}
		setAttr(item, target, value)
	}

	for _, path := range splitTopLevel(strings.Join(buffers["REMOVE"], " "), ',') {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		removeAttr(item, resolvePath(path, names))
	}
	return nil
}

func evalRHS(item map[string]types.AttributeValue, rhs string, names map[string]string, values map[string]types.AttributeValue) (types.AttributeValue, error) {
	switch {
	case strings.HasPrefix(rhs, ":"):
		value, ok := values[rhs]
		if !ok {
			return nil, fmt.Errorf("missing expression value %q", rhs)
		}
		return value, nil

	case strings.HasPrefix(rhs, "list_append("):
		inner := rhs[len("list_append(") : len(rhs)-1]
		args := splitTopLevel(inner, ',')
		if len(args) != 2 {
			return nil, fmt.Errorf("bad list_append %q", rhs)
		}
		left, err := evalListArg(item, strings.TrimSpace(args[0]), names, values)
		if err != nil {
			return nil, err
		}
		right, err := evalListArg(item, strings.TrimSpace(args[1]), names, values)
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberL{Value: append(append([]types.AttributeValue{}, left...), right...)}, nil

	case strings.Contains(rhs, " + "), strings.Contains(rhs, " - "):
		operator := " + "
		sign := 1.0
		if strings.Contains(rhs, " - ") {
			operator = " - "
			sign = -1.0
		}
		sides := strings.SplitN(rhs, operator, 2)
		current, _ := getAttr(item, resolvePath(sides[0], names))
		operand, ok := values[strings.TrimSpace(sides[1])]
		if !ok {
			return nil, fmt.Errorf("missing operand in %q", rhs)
		}
		result := numberValue(current) + sign*numberValue(operand)
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(result, 'f', -1, 64)}, nil

	default:
		value, ok := getAttr(item, resolvePath(rhs, names))
		if !ok {
			return nil, fmt.Errorf("unresolvable RHS %q", rhs)
		}
		return value, nil
	}
}

func evalListArg(item map[string]types.AttributeValue, arg string, names map[string]string, values map[string]types.AttributeValue) ([]types.AttributeValue, error) {
	if strings.HasPrefix(arg, "if_not_exists(") {
		inner := arg[len("if_not_exists(") : len(arg)-1]
		parts := splitTopLevel(inner, ',')
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad if_not_exists %q", arg)
		}
		if value, ok := getAttr(item, resolvePath(strings.TrimSpace(parts[0]), names)); ok {
			return listValue(value)
		}
		arg = strings.TrimSpace(parts[1])
	}

	if strings.HasPrefix(arg, ":") {
		value, ok := values[arg]
		if !ok {
			return nil, fmt.Errorf("missing expression value %q", arg)
		}
		return listValue(value)
	}
	value, ok := getAttr(item, resolvePath(arg, names))
	if !ok {
		return []types.AttributeValue{}, nil
	}
	return listValue(value)
}

func listValue(value types.AttributeValue) ([]types.AttributeValue, error) {
	l, ok := value.(*types.AttributeValueMemberL)
	if !ok {
		return nil, fmt.Errorf("expected list value, got %T", value)
	}
	return l.Value, nil
}

func evalConditionExpr(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	if item == nil {
		item = map[string]types.AttributeValue{}
	}

	for _, term := range strings.Split(expr, " AND ") {
		term = strings.TrimSpace(term)
		switch {
		case strings.HasPrefix(term, "attribute_exists("):
			path := term[len("attribute_exists(") : len(term)-1]
			if _, ok := getAttr(item, resolvePath(path, names)); !ok {
				return false, nil
			}

		case strings.HasPrefix(term, "attribute_not_exists("):
			path := term[len("attribute_not_exists(") : len(term)-1]
			if _, ok := getAttr(item, resolvePath(path, names)); ok {
				return false, nil
			}

		case strings.Contains(term, " = "):
			sides := strings.SplitN(term, " = ", 2)
			left, _ := getAttr(item, resolvePath(sides[0], names))
			right, ok := values[strings.TrimSpace(sides[1])]
			if !ok {
				return false, fmt.Errorf("missing condition value in %q", term)
			}
			if !avEqual(left, right) {
				return false, nil
			}

		case strings.Contains(term, " < "):
			sides := strings.SplitN(term, " < ", 2)
			left, ok := getAttr(item, resolvePath(sides[0], names))
			if !ok {
				return false, nil
			}
			right, ok := values[strings.TrimSpace(sides[1])]
			if !ok {
				return false, fmt.Errorf("missing condition value in %q", term)
			}
			if !(numberValue(left) < numberValue(right)) {
				return false, nil
			}

		default:
			return false, fmt.Errorf("unsupported condition term %q", term)
		}
	}
	return true, nil
}

func avEqual(a, b types.AttributeValue) bool {
	switch left := a.(type) {
	case *types.AttributeValueMemberS:
		right, ok := b.(*types.AttributeValueMemberS)
		return ok && left.Value == right.Value
	case *types.AttributeValueMemberN:
		right, ok := b.(*types.AttributeValueMemberN)
		return ok && numberValue(a) == numberValue(right)
	case *types.AttributeValueMemberBOOL:
		right, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && left.Value == right.Value
	case nil:
		return b == nil
	}
	return false
}

func numberValue(value types.AttributeValue) float64 {
	n, ok := value.(*types.AttributeValueMemberN)
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func stringAV(value types.AttributeValue) string {
	s, ok := value.(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return s.Value
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	clone := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		clone[k] = copyAV(v)
	}
	return clone
}

func copyAV(value types.AttributeValue) types.AttributeValue {
	switch v := value.(type) {
	case *types.AttributeValueMemberM:
		return &types.AttributeValueMemberM{Value: copyItem(v.Value)}
	case *types.AttributeValueMemberL:
		items := make([]types.AttributeValue, len(v.Value))
		for i, item := range v.Value {
			items[i] = copyAV(item)
		}
		return &types.AttributeValueMemberL{Value: items}
	case *types.AttributeValueMemberSS:
		return &types.AttributeValueMemberSS{Value: append([]string{}, v.Value...)}
	case *types.AttributeValueMemberS:
		return &types.AttributeValueMemberS{Value: v.Value}
	case *types.AttributeValueMemberN:
		return &types.AttributeValueMemberN{Value: v.Value}
	case *types.AttributeValueMemberBOOL:
		return &types.AttributeValueMemberBOOL{Value: v.Value}
	default:
		return value
	}
}
