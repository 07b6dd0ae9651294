package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMilestonesTableName = "milestones"
	dynamoBatchWriteLimit      = 25
)

type milestoneItem struct {
	ProjectID          string  `dynamodbav:"project_id"`
	SortKey            string  `dynamodbav:"sort_key"`
	MilestoneType      string  `dynamodbav:"milestone_type"`
	SubcontractorFeeID *string `dynamodbav:"subcontractor_fee_id,omitempty"`
	Name               string  `dynamodbav:"name"`
	Description        string  `dynamodbav:"description,omitempty"`
	Cost               string  `dynamodbav:"cost"`
	CustomerPrice      *string `dynamodbav:"customer_price,omitempty"`
}

// MilestoneDynamoRepository persists MilestoneRecord sets in DynamoDB.
//
// Table requirements:
//   - PK: project_id (string)
//   - SK: sort_key (string, zero-padded position)
//
// Replace deletes whatever set the project had before writing the new one, so
// a shrinking schedule never leaves stale trailing records behind.

type MilestoneDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMilestoneRepository = (*MilestoneDynamoRepository)(nil)

func NewMilestoneDynamoRepository(ddb *dynamodb.Client) *MilestoneDynamoRepository {
	return &MilestoneDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MILESTONES_TABLE", defaultMilestonesTableName),
	}
}

func (r *MilestoneDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.MilestoneRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]milestoneItem, 0, len(out.Items))
	for _, raw := range out.Items {
		var it milestoneItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortKey < items[j].SortKey })

	records := make([]entities.MilestoneRecord, 0, len(items))
	for _, it := range items {
		records = append(records, fromMilestoneItem(it))
	}
	return records, nil
}

func (r *MilestoneDynamoRepository) ReplaceForProject(ctx context.Context, projectID string, records []entities.MilestoneRecord) error {
	existing, err := r.listSortKeys(ctx, projectID)
	if err != nil {
		return err
	}

	var writes []types.WriteRequest
	for _, sk := range existing {
		writes = append(writes, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"project_id": &types.AttributeValueMemberS{Value: projectID},
					"sort_key":   &types.AttributeValueMemberS{Value: sk},
				},
			},
		})
	}
	for pos, rec := range records {
		av, err := attributevalue.MarshalMap(toMilestoneItem(projectID, pos, rec))
		if err != nil {
			return err
		}
		writes = append(writes, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}

	// A delete and a put for the same key may not share a batch; the puts
	// reuse the low positions the deletes just cleared. Delete first, then put.
	split := len(existing)
	if err := r.flushWrites(ctx, writes[:split]); err != nil {
		return err
	}
	return r.flushWrites(ctx, writes[split:])
}

func (r *MilestoneDynamoRepository) listSortKeys(ctx context.Context, projectID string) ([]string, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
		ProjectionExpression: aws.String("sort_key"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(out.Items))
	for _, raw := range out.Items {
		if v, ok := raw["sort_key"].(*types.AttributeValueMemberS); ok {
			keys = append(keys, v.Value)
		}
	}
	return keys, nil
}

func (r *MilestoneDynamoRepository) flushWrites(ctx context.Context, writes []types.WriteRequest) error {
	for start := 0; start < len(writes); start += dynamoBatchWriteLimit {
		end := start + dynamoBatchWriteLimit
		if end > len(writes) {
			end = len(writes)
		}
		batch := map[string][]types.WriteRequest{r.tableName: writes[start:end]}
		for len(batch[r.tableName]) > 0 {
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: batch})
			if err != nil {
				return err
			}
			batch = out.UnprocessedItems
		}
	}
	return nil
}

func toMilestoneItem(projectID string, position int, rec entities.MilestoneRecord) milestoneItem {
	var price *string
	if rec.CustomerPrice != nil {
		s := floatToString(*rec.CustomerPrice)
		price = &s
	}
	return milestoneItem{
		ProjectID:          projectID,
		SortKey:            fmt.Sprintf("%04d", position),
		MilestoneType:      string(rec.MilestoneType),
		SubcontractorFeeID: rec.SubcontractorFeeID,
		Name:               rec.Name,
		Description:        rec.Description,
		Cost:               floatToString(rec.Cost),
		CustomerPrice:      price,
	}
}

func fromMilestoneItem(it milestoneItem) entities.MilestoneRecord {
	cost, _ := strconv.ParseFloat(it.Cost, 64)
	var price *float64
	if it.CustomerPrice != nil {
		if v, err := strconv.ParseFloat(*it.CustomerPrice, 64); err == nil {
			price = &v
		}
	}
	return entities.MilestoneRecord{
		MilestoneType:      entities.MilestoneType(it.MilestoneType),
		SubcontractorFeeID: it.SubcontractorFeeID,
		Name:               it.Name,
		Description:        it.Description,
		Cost:               cost,
		CustomerPrice:      price,
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
