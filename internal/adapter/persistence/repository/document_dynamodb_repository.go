package repository

import (
	"context"
	"sort"
	"time"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultDocumentsTableName = "documents"
	documentsProjectIDIndex   = "project_id-index"
)

type documentItem struct {
	ID             string `dynamodbav:"id"`
	ProjectID      string `dynamodbav:"project_id"`
	DocumentType   string `dynamodbav:"document_type"`
	DocumentNumber string `dynamodbav:"document_number,omitempty"`
	FileURL        string `dynamodbav:"file_url"`
	GrandTotal     string `dynamodbav:"grand_total"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// DocumentDynamoRepository persists GeneratedDocument entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)

type DocumentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IDocumentRepository = (*DocumentDynamoRepository)(nil)

func NewDocumentDynamoRepository(ddb *dynamodb.Client) *DocumentDynamoRepository {
	return &DocumentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("DOCUMENTS_TABLE", defaultDocumentsTableName),
	}
}

func (r *DocumentDynamoRepository) Create(ctx context.Context, d entities.GeneratedDocument) (entities.GeneratedDocument, error) {
	it := toDocumentItem(d)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.GeneratedDocument{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.GeneratedDocument{}, err
	}
	return d, nil
}

func (r *DocumentDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.GeneratedDocument, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(documentsProjectIDIndex),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return nil, err
	}

	docs := make([]entities.GeneratedDocument, 0, len(out.Items))
	for _, raw := range out.Items {
		var it documentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		docs = append(docs, fromDocumentItem(it))
	}
	// Newest first for document history views.
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func toDocumentItem(d entities.GeneratedDocument) documentItem {
	return documentItem{
		ID:             d.ID,
		ProjectID:      d.ProjectID,
		DocumentType:   string(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		FileURL:        d.FileURL,
		GrandTotal:     floatToString(d.GrandTotal),
		CreatedAt:      d.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromDocumentItem(it documentItem) entities.GeneratedDocument {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	grandTotal, _ := parseFloat(it.GrandTotal)
	return entities.GeneratedDocument{
		ID:             it.ID,
		ProjectID:      it.ProjectID,
		DocumentType:   entities.DocumentType(it.DocumentType),
		DocumentNumber: it.DocumentNumber,
		FileURL:        it.FileURL,
		GrandTotal:     grandTotal,
		CreatedAt:      createdAt,
	}
}
